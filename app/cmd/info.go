package cmd

import (
	"fmt"

	"github.com/mgutz/ansi"
	"github.com/urfave/cli/v2"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/types"
)

var InfoCmd = &cli.Command{
	Name:  "info",
	Usage: "print information of the market node",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ver, err := napi.Version(cctx.Context)
		if err != nil {
			return err
		}

		mi, err := napi.MarketInfo(cctx.Context)
		if err != nil {
			return err
		}

		fmt.Println(ansi.Color("----------- Node Information -----------", "green"))
		fmt.Printf("Version: %s, API: %x\n", ver.Version, ver.APIVersion)
		fmt.Printf("Height: %d, Root: %s\n", mi.Height, mi.Root)

		fmt.Println(ansi.Color("----------- Market Information -----------", "green"))
		fmt.Println("Owner:", mi.Owner)
		fmt.Println("Account:", mi.Account)
		fmt.Println("Treasury:", mi.Treasury)
		fmt.Println("Chain ID:", mi.ChainID)
		fmt.Printf("Trade fee: %d%%\n", mi.TradeFeePercent)

		tokens, err := napi.SettlementTokens(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Println("Settlement tokens:", len(tokens))

		fmt.Println(ansi.Color("----------- Order Information -----------", "green"))
		for _, st := range []types.OrderStatus{types.StatusOpen, types.StatusExecuted, types.StatusCancelled} {
			n, err := napi.TotalOrders(cctx.Context, st)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d\n", st, n)
		}

		fees, err := napi.CurrencyBalance(cctx.Context, build.NativeCurrency, mi.Treasury)
		if err != nil {
			return err
		}
		fmt.Println("Native fees held by treasury:", fees)

		return nil
	},
}
