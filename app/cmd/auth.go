package cmd

import (
	"fmt"

	"github.com/filecoin-project/go-jsonrpc/auth"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
)

var AuthCmd = &cli.Command{
	Name:  "auth",
	Usage: "Manage RPC permissions",
	Subcommands: []*cli.Command{
		authCreateTokenCmd,
	},
}

var authCreateTokenCmd = &cli.Command{
	Name:  "create-token",
	Usage: "Create token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "perm",
			Usage: "permission to assign to the token, one of: read, write, sign, admin",
			Value: string(api.PermRead),
		},
	},
	Action: func(cctx *cli.Context) error {
		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		perm := auth.Permission(cctx.String("perm"))
		idx := -1
		for i, p := range api.AllPermissions {
			if p == perm {
				idx = i
			}
		}
		if idx < 0 {
			return xerrors.Errorf("--perm flag has to be one of: %s", api.AllPermissions)
		}

		// a permission implies every weaker one
		token, err := napi.AuthNew(cctx.Context, api.AllPermissions[:idx+1])
		if err != nil {
			return err
		}

		fmt.Println(string(token))
		return nil
	},
}
