package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/repo"
)

var InitCmd = &cli.Command{
	Name:  "init",
	Usage: "Initialize an artwhale repo",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  pwKwd,
			Usage: "password for the generated wallet key, prompted when unset",
		},
		&cli.StringFlag{
			Name:  "owner",
			Usage: "marketplace owner, defaults to the generated wallet address",
		},
		&cli.StringFlag{
			Name:  "treasury",
			Usage: "trade fee receiver, defaults to the market account",
		},
		&cli.Int64Flag{
			Name:  "chain-id",
			Usage: "chain id in mint authorization domains",
			Value: 1,
		},
		&cli.Uint64Flag{
			Name:  "fee",
			Usage: "trade fee percent",
		},
	},
	Action: func(cctx *cli.Context) error {
		logger.Info("Initializing artwhale node")

		repoDir := cctx.String(FlagNodeRepo)

		exist, err := repo.Exists(repoDir)
		if err != nil {
			return err
		}
		if exist {
			return xerrors.Errorf("repo at '%s' is already initialized", repoDir)
		}

		cfg := config.NewDefaultConfig()
		cfg.Market.ChainID = cctx.Int64("chain-id")
		cfg.Market.TradeFeePercent = cctx.Uint64("fee")
		if cfg.Market.TradeFeePercent > 100 {
			return xerrors.Errorf("trade fee %d is above 100", cfg.Market.TradeFeePercent)
		}
		if t := cctx.String("treasury"); t != "" {
			ta, err := parseAddress(t)
			if err != nil {
				return err
			}
			cfg.Market.Treasury = ta.Hex()
		}

		pw, err := getPassword(cctx, "Password for the new wallet key: ")
		if err != nil {
			return err
		}

		logger.Infof("Initializing repo at '%s'", repoDir)

		rep, err := repo.NewFSRepo(repoDir, cfg)
		if err != nil {
			return err
		}
		defer rep.Close()

		logger.Info("generating wallet key...")
		addr, err := rep.Wallet().Generate(pw)
		if err != nil {
			return err
		}
		logger.Infof("generated wallet: %s", addr)

		owner := addr
		if o := cctx.String("owner"); o != "" {
			owner, err = parseAddress(o)
			if err != nil {
				return err
			}
		}

		cfg = rep.Config()
		cfg.Wallet.DefaultAddress = addr.Hex()
		cfg.Market.Owner = owner.Hex()
		if err := rep.ReplaceConfig(cfg); err != nil {
			logger.Errorf("Error replacing config %s", err)
			return err
		}

		fmt.Println("wallet:", addr)
		if owner != (common.Address{}) {
			fmt.Println("market owner:", owner)
		}
		return nil
	},
}
