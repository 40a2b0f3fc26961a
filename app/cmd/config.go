package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/artwhale/go-artwhale/lib/repo"
)

var ConfigCmd = &cli.Command{
	Name:  "config",
	Usage: "Interact with config",
	Subcommands: []*cli.Command{
		configSetCmd,
		configGetCmd,
	},
}

var configKeyFlag = &cli.StringFlag{
	Name:  "key",
	Usage: "The key of the config entry (e.g. \"market.tradeFeePercent\")",
}

var configGetCmd = &cli.Command{
	Name:  "get",
	Usage: "Get config key",
	Flags: []cli.Flag{configKeyFlag},
	Action: func(cctx *cli.Context) error {
		key := cctx.String("key")
		if key == "" {
			return errors.New("key is nil")
		}

		res, err := getConfig(cctx, key)
		if err != nil {
			return err
		}

		bs, err := json.MarshalIndent(res, "", "\t")
		if err != nil {
			return err
		}
		fmt.Println(string(bs))
		return nil
	},
}

var configSetCmd = &cli.Command{
	Name:  "set",
	Usage: "Set config key",
	Flags: []cli.Flag{
		configKeyFlag,
		&cli.StringFlag{
			Name:  "value",
			Usage: "The json value with which to set the config entry",
		},
	},
	Action: func(cctx *cli.Context) error {
		key := cctx.String("key")
		if key == "" {
			return errors.New("key is nil")
		}
		value := cctx.String("value")
		if value == "" {
			return errors.New("value is nil")
		}

		if err := setConfig(cctx, key, value); err != nil {
			return err
		}

		fmt.Printf("set %s to %s\n", key, value)
		return nil
	},
}

// getConfig asks a running daemon, or reads the repo when none is running.
func getConfig(cctx *cli.Context, key string) (interface{}, error) {
	if napi, closer, err := getAPI(cctx); err == nil {
		defer closer()
		return napi.ConfigGet(cctx.Context, key)
	}

	rep, err := repo.NewFSRepo(cctx.String(FlagNodeRepo), nil)
	if err != nil {
		return nil, err
	}
	defer rep.Close()

	return rep.Config().Get(key)
}

// setConfig goes through a running daemon so its in-memory config stays
// current, or edits the repo directly.
func setConfig(cctx *cli.Context, key, value string) error {
	if napi, closer, err := getAPI(cctx); err == nil {
		defer closer()
		return napi.ConfigSet(cctx.Context, key, value)
	}

	rep, err := repo.NewFSRepo(cctx.String(FlagNodeRepo), nil)
	if err != nil {
		return err
	}
	defer rep.Close()

	cfg := rep.Config()
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return rep.ReplaceConfig(cfg)
}
