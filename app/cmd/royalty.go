package cmd

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	"github.com/artwhale/go-artwhale/lib/tx"
)

var RoyaltyCmd = &cli.Command{
	Name:  "royalty",
	Usage: "Manage collection royalties",
	Subcommands: []*cli.Command{
		royaltySetDefaultCmd,
		royaltySetTokenCmd,
		royaltyResetTokenCmd,
		royaltyInfoCmd,
	},
}

var royaltyFlag = &cli.StringFlag{
	Name:  "royalty",
	Usage: "receiver:fraction,... in 1/10000; empty means no royalty",
}

var itemFlag = &cli.StringFlag{
	Name:     itemKwd,
	Usage:    "item id",
	Required: true,
}

func royaltyParams(withItem bool, withSet bool) func(cctx *cli.Context) (interface{}, error) {
	return func(cctx *cli.Context) (interface{}, error) {
		c, err := requiredAddress(cctx, collectionKwd)
		if err != nil {
			return nil, err
		}
		p := &tx.RoyaltyParams{Collection: c}
		if withItem {
			p.TokenID, err = bigFlag(cctx, itemKwd)
			if err != nil {
				return nil, err
			}
		}
		if withSet {
			p.Royalty, err = parseRoyalty(cctx.String("royalty"))
			if err != nil {
				return nil, err
			}
		}
		return p, nil
	}
}

var royaltySetDefaultCmd = &cli.Command{
	Name:   "set-default",
	Usage:  "set the default royalty of a collection; empty deletes it",
	Flags:  withSendFlags(collectionFlag, royaltyFlag),
	Action: sendAction(tx.SetDefaultRoyalty, royaltyParams(false, true)),
}

var royaltySetTokenCmd = &cli.Command{
	Name:   "set-token",
	Usage:  "override the royalty of one item",
	Flags:  withSendFlags(collectionFlag, itemFlag, royaltyFlag),
	Action: sendAction(tx.SetTokenRoyalty, royaltyParams(true, true)),
}

var royaltyResetTokenCmd = &cli.Command{
	Name:   "reset-token",
	Usage:  "drop an item override so it follows the default again",
	Flags:  withSendFlags(collectionFlag, itemFlag),
	Action: sendAction(tx.ResetTokenRoyalty, royaltyParams(true, false)),
}

var royaltyInfoCmd = &cli.Command{
	Name:  "info",
	Usage: "show the royalty of a collection or item",
	Flags: []cli.Flag{
		collectionFlag,
		&cli.StringFlag{
			Name:  itemKwd,
			Usage: "item id, shows the default set when unset",
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "also split this sale price",
		},
	},
	Action: func(cctx *cli.Context) error {
		c, err := requiredAddress(cctx, collectionKwd)
		if err != nil {
			return err
		}

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		if cctx.String(itemKwd) == "" {
			rs, err := napi.DefaultRoyaltyInfo(cctx.Context, c)
			if err != nil {
				return err
			}
			fmt.Println("Default royalty:", formatRoyalty(rs))
			return nil
		}

		item, err := bigFlag(cctx, itemKwd)
		if err != nil {
			return err
		}

		tr, err := napi.TokenRoyaltyInfo(cctx.Context, c, item)
		if err != nil {
			return err
		}
		src := "default"
		if tr.Override {
			src = "override"
		}
		fmt.Printf("Royalty (%s): %s\n", src, formatRoyalty(tr.Royalty))

		if cctx.String("price") == "" {
			return nil
		}
		price, err := bigFlag(cctx, "price")
		if err != nil {
			return err
		}
		split, err := napi.CalculateRoyalty(cctx.Context, c, item, price)
		if err != nil {
			return err
		}
		for i, recv := range split.Receivers {
			fmt.Printf("  %s: %s\n", recv, split.Amounts[i])
		}
		fmt.Println("Total:", orZero(split.Total))
		return nil
	},
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
