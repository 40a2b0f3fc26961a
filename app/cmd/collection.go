package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/modood/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
)

const collectionKwd = "collection"

var CollectionCmd = &cli.Command{
	Name:  "collection",
	Usage: "Manage hosted item collections",
	Subcommands: []*cli.Command{
		collectionCreateCmd,
		collectionInfoCmd,
		collectionListCmd,
		collectionSetSignerCmd,
		collectionSetOperatorCmd,
	},
}

var collectionFlag = &cli.StringFlag{
	Name:     collectionKwd,
	Usage:    "collection address",
	Required: true,
}

var collectionCreateCmd = &cli.Command{
	Name:  "create",
	Usage: "create a collection, market owner only",
	Flags: withSendFlags(
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "symbol"},
		&cli.StringFlag{
			Name:  "standard",
			Usage: "single or multi",
			Value: "single",
		},
		&cli.StringFlag{
			Name:     "signer",
			Usage:    "trusted mint signer",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "treasury",
			Usage: "receiver of mint payments, defaults to the creator",
		},
		&cli.StringFlag{
			Name:  "base-uri",
			Usage: "prefix of single owner token uris",
		},
		&cli.StringFlag{
			Name:  "royalty",
			Usage: "default royalty as receiver:fraction,... in 1/10000",
		},
	),
	Action: func(cctx *cli.Context) error {
		std, err := types.ParseStandard(cctx.String("standard"))
		if err != nil {
			return err
		}
		signer, err := requiredAddress(cctx, "signer")
		if err != nil {
			return err
		}
		treasury, err := addressFlag(cctx, "treasury")
		if err != nil {
			return err
		}
		rs, err := parseRoyalty(cctx.String("royalty"))
		if err != nil {
			return err
		}

		p := &tx.CollectionParams{
			Name:     cctx.String("name"),
			Symbol:   cctx.String("symbol"),
			Standard: std,
			Signer:   signer,
			Treasury: treasury,
			BaseURI:  cctx.String("base-uri"),
			Royalty:  rs,
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.push(cctx, tx.CreateCollection, p, nil)
		if err != nil {
			return err
		}

		var addr common.Address
		if err := r.DecodeReturn(&addr); err != nil {
			return err
		}
		fmt.Println("collection:", addr)
		return nil
	},
}

var collectionInfoCmd = &cli.Command{
	Name:      "info",
	Usage:     "show a collection",
	ArgsUsage: "<collection>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return xerrors.New("need one collection address")
		}
		addr, err := parseAddress(cctx.Args().First())
		if err != nil {
			return err
		}

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		c, err := napi.CollectionInfo(cctx.Context, addr)
		if err != nil {
			return err
		}
		rs, err := napi.DefaultRoyaltyInfo(cctx.Context, addr)
		if err != nil {
			return err
		}

		fmt.Println("Address:", c.Address)
		fmt.Printf("Name: %s (%s)\n", c.Name, c.Symbol)
		fmt.Println("Standard:", c.Standard)
		fmt.Println("Owner:", c.Owner)
		fmt.Println("Signer:", c.Signer)
		fmt.Println("Operator:", c.Operator)
		fmt.Println("Treasury:", c.Treasury)
		fmt.Println("Base URI:", c.BaseURI)
		fmt.Println("Default royalty:", formatRoyalty(rs))
		return nil
	},
}

type collectionRow struct {
	Address  string
	Name     string
	Standard string
	Owner    string
}

var collectionListCmd = &cli.Command{
	Name:  "list",
	Usage: "list hosted collections",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		cs, err := napi.Collections(cctx.Context)
		if err != nil {
			return err
		}

		rows := make([]collectionRow, 0, len(cs))
		for _, c := range cs {
			rows = append(rows, collectionRow{
				Address:  c.Address.Hex(),
				Name:     c.Name,
				Standard: c.Standard.String(),
				Owner:    c.Owner.Hex(),
			})
		}
		table.Output(rows)
		return nil
	},
}

func addressParams(flag string) func(cctx *cli.Context) (interface{}, error) {
	return func(cctx *cli.Context) (interface{}, error) {
		c, err := requiredAddress(cctx, collectionKwd)
		if err != nil {
			return nil, err
		}
		a, err := addressFlag(cctx, flag)
		if err != nil {
			return nil, err
		}
		return &tx.AddressParams{Collection: c, Address: a}, nil
	}
}

var collectionSetSignerCmd = &cli.Command{
	Name:  "set-signer",
	Usage: "rotate the trusted mint signer, collection owner only",
	Flags: withSendFlags(
		collectionFlag,
		&cli.StringFlag{Name: "signer", Required: true},
	),
	Action: sendAction(tx.SetSigner, addressParams("signer")),
}

var collectionSetOperatorCmd = &cli.Command{
	Name:  "set-operator",
	Usage: "set the token operator, collection owner only; empty clears it",
	Flags: withSendFlags(
		collectionFlag,
		&cli.StringFlag{Name: "operator"},
	),
	Action: sendAction(tx.SetOperator, addressParams("operator")),
}
