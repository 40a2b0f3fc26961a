package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/artwhale/go-artwhale/app/cmd"
	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/utils/paths"
)

func main() {
	app := &cli.App{
		Name:                 "artwhale",
		Usage:                "ArtWhale NFT marketplace node",
		Version:              build.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  cmd.FlagNodeRepo,
				Usage: "Specify artwhale repo path, else $" + paths.RepoPathVar + " or ~/.artwhale.",
			},
		},
		Before: func(cctx *cli.Context) error {
			p, err := paths.GetRepoPath(cctx.String(cmd.FlagNodeRepo))
			if err != nil {
				return err
			}
			return cctx.Set(cmd.FlagNodeRepo, p)
		},

		Commands: cmd.CommonCmd,
	}

	app.Setup()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n\n", err) // nolint:errcheck
		os.Exit(1)
	}
}
