package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
)

var RegistryCmd = &cli.Command{
	Name:  "registry",
	Usage: "Manage settlement tokens, contract whitelists and the trade fee",
	Subcommands: []*cli.Command{
		registryAddCurrencyCmd,
		registryRemoveCurrencyCmd,
		registryWhitelistCmd,
		registryUnwhitelistCmd,
		registryFeeCmd,
		registryInfoCmd,
	},
}

var currencyFlag = &cli.StringFlag{
	Name:     currencyKwd,
	Usage:    "currency contract address",
	Required: true,
}

func currencyParams(cctx *cli.Context) (interface{}, error) {
	c, err := requiredAddress(cctx, currencyKwd)
	if err != nil {
		return nil, err
	}
	return &tx.CurrencyParams{Currency: c}, nil
}

var registryAddCurrencyCmd = &cli.Command{
	Name:   "add-currency",
	Usage:  "accept a currency for settlement",
	Flags:  withSendFlags(currencyFlag),
	Action: sendAction(tx.AddSettlementToken, currencyParams),
}

var registryRemoveCurrencyCmd = &cli.Command{
	Name:   "remove-currency",
	Usage:  "stop accepting a currency for new orders",
	Flags:  withSendFlags(currencyFlag),
	Action: sendAction(tx.RemoveSettlementToken, currencyParams),
}

var whitelistFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "standard",
		Usage: "single or multi",
		Value: "single",
	},
	&cli.StringFlag{
		Name:     contractKwd,
		Usage:    "item contract address",
		Required: true,
	},
}

func whitelistParams(cctx *cli.Context) (interface{}, error) {
	std, err := types.ParseStandard(cctx.String("standard"))
	if err != nil {
		return nil, err
	}
	c, err := requiredAddress(cctx, contractKwd)
	if err != nil {
		return nil, err
	}
	return &tx.WhitelistParams{Standard: std, Contract: c}, nil
}

var registryWhitelistCmd = &cli.Command{
	Name:   "whitelist",
	Usage:  "allow orders on an item contract",
	Flags:  withSendFlags(whitelistFlags...),
	Action: sendAction(tx.AddWhitelist, whitelistParams),
}

var registryUnwhitelistCmd = &cli.Command{
	Name:   "unwhitelist",
	Usage:  "stop new orders on an item contract",
	Flags:  withSendFlags(whitelistFlags...),
	Action: sendAction(tx.RemoveWhitelist, whitelistParams),
}

var registryFeeCmd = &cli.Command{
	Name:      "fee",
	Usage:     "set the trade fee percent",
	ArgsUsage: "<percent>",
	Flags:     withSendFlags(),
	Action: sendAction(tx.SetTradeFeePercent, func(cctx *cli.Context) (interface{}, error) {
		if cctx.NArg() != 1 {
			return nil, xerrors.New("need the fee percent")
		}
		v, err := strconv.ParseUint(cctx.Args().First(), 10, 64)
		if err != nil {
			return nil, err
		}
		return &tx.FeeParams{Percent: v}, nil
	}),
}

var registryInfoCmd = &cli.Command{
	Name:  "info",
	Usage: "show the registry",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		fee, err := napi.TradeFeePercent(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Printf("Trade fee: %d%%\n", fee)

		tokens, err := napi.SettlementTokens(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Println("Settlement tokens:")
		for _, t := range tokens {
			fmt.Println("  ", t)
		}

		for _, std := range []types.Standard{types.SingleOwner, types.MultiBalance} {
			wl, err := napi.Whitelist(cctx.Context, std)
			if err != nil {
				return err
			}
			fmt.Printf("Whitelist %s:\n", std)
			for _, c := range wl {
				fmt.Println("  ", c)
			}
		}
		return nil
	},
}
