package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/repo"
)

var WalletCmd = &cli.Command{
	Name:  "wallet",
	Usage: "Interact with the local keystore",
	Subcommands: []*cli.Command{
		walletNewCmd,
		walletListCmd,
		walletDefaultCmd,
	},
}

var walletListCmd = &cli.Command{
	Name:  "list",
	Usage: "list all addrs",
	Action: func(cctx *cli.Context) error {
		w, err := openWallet(cctx)
		if err != nil {
			return err
		}

		addrs, err := w.List()
		if err != nil {
			return err
		}

		def := ""
		if cfg, err := repo.ReadConfig(cctx.String(FlagNodeRepo)); err == nil {
			def = cfg.Wallet.DefaultAddress
		}

		for _, as := range addrs {
			if as.Hex() == def {
				fmt.Println(as, "(default)")
				continue
			}
			fmt.Println(as)
		}
		return nil
	},
}

var walletNewCmd = &cli.Command{
	Name:  "new",
	Usage: "create a new wallet address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  pwKwd,
			Usage: "password for the new key, prompted when unset",
		},
	},
	Action: func(cctx *cli.Context) error {
		w, err := openWallet(cctx)
		if err != nil {
			return err
		}

		pw, err := getPassword(cctx, "Password for the new key: ")
		if err != nil {
			return err
		}

		addr, err := w.Generate(pw)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}

var walletDefaultCmd = &cli.Command{
	Name:      "default",
	Usage:     "set the address client commands sign with",
	ArgsUsage: "<address>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return xerrors.New("need one address")
		}
		addr, err := parseAddress(cctx.Args().First())
		if err != nil {
			return err
		}

		w, err := openWallet(cctx)
		if err != nil {
			return err
		}
		if !w.Has(addr) {
			return xerrors.Errorf("%s is not in the keystore", addr)
		}

		return setConfig(cctx, "wallet.defaultAddress", addr.Hex())
	},
}
