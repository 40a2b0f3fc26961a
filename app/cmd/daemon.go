package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/artwhale/go-artwhale/app/minit"
	"github.com/artwhale/go-artwhale/lib/repo"
	basenode "github.com/artwhale/go-artwhale/submodule/node"
)

const apiAddrKwd = "api"

var DaemonCmd = &cli.Command{
	Name:  "daemon",
	Usage: "Run an artwhale market node",

	Subcommands: []*cli.Command{
		daemonStartCmd,
		daemonStopCmd,
	},
}

var daemonStartCmd = &cli.Command{
	Name:  "start",
	Usage: "Start an artwhale daemon",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  apiAddrKwd,
			Usage: "set the api addr to use",
		},
	},
	Action: func(cctx *cli.Context) error {
		return daemonStartFunc(cctx)
	},
}

var daemonStopCmd = &cli.Command{
	Name:  "stop",
	Usage: "Stop a running artwhale daemon",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return napi.Shutdown(cctx.Context)
	},
}

// create a node with repo data and serve it until shutdown
func daemonStartFunc(cctx *cli.Context) error {
	logger.Info("Initializing daemon...")

	ctx := cctx.Context

	minit.PrintVersion()

	stopFunc, err := minit.ProfileIfEnabled()
	if err != nil {
		return err
	}
	defer stopFunc()

	rep, err := repo.NewFSRepo(cctx.String(FlagNodeRepo), nil)
	if err != nil {
		return err
	}

	if apiAddr := cctx.String(apiAddrKwd); apiAddr != "" {
		cfg := rep.Config()
		cfg.API.APIAddress = apiAddr
		if err := rep.ReplaceConfig(cfg); err != nil {
			rep.Close()
			return err
		}
	}

	opts, err := basenode.OptionsFromRepo(rep)
	if err != nil {
		rep.Close()
		return err
	}

	node, err := basenode.New(ctx, opts...)
	if err != nil {
		rep.Close()
		return err
	}

	if err := node.Start(ctx); err != nil {
		node.Stop(ctx)
		return err
	}

	// Stop closes the repo once serving ends
	ready := make(chan interface{})
	return node.RunRPCAndWait(ctx, ready)
}
