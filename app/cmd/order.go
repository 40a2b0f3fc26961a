package cmd

import (
	"fmt"
	"strconv"

	"github.com/modood/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
)

var OrderCmd = &cli.Command{
	Name:  "order",
	Usage: "Create, settle and query sale orders",
	Subcommands: []*cli.Command{
		orderCreateCmd,
		orderCancelCmd,
		orderExecuteCmd,
		orderGetCmd,
		orderListCmd,
	},
}

func orderID(cctx *cli.Context) (uint64, error) {
	if cctx.NArg() != 1 {
		return 0, xerrors.New("need one order id")
	}
	return strconv.ParseUint(cctx.Args().First(), 10, 64)
}

var orderCreateCmd = &cli.Command{
	Name:  "create",
	Usage: "escrow an item and list it for sale",
	Flags: withSendFlags(
		&cli.StringFlag{
			Name:  "standard",
			Usage: "single or multi",
			Value: "single",
		},
		&cli.StringFlag{Name: contractKwd, Required: true},
		itemFlag,
		&cli.StringFlag{
			Name:  "quantity",
			Usage: "must be 1 for single owner items",
			Value: "1",
		},
		&cli.StringFlag{
			Name:     currencyKwd,
			Usage:    "settlement token address",
			Required: true,
		},
		&cli.StringFlag{Name: "price", Required: true},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "p2p or authority",
			Value: "p2p",
		},
	),
	Action: func(cctx *cli.Context) error {
		std, err := types.ParseStandard(cctx.String("standard"))
		if err != nil {
			return err
		}
		kind, err := types.ParseOrderKind(cctx.String("kind"))
		if err != nil {
			return err
		}
		contract, err := requiredAddress(cctx, contractKwd)
		if err != nil {
			return err
		}
		currency, err := requiredAddress(cctx, currencyKwd)
		if err != nil {
			return err
		}
		item, err := bigFlag(cctx, itemKwd)
		if err != nil {
			return err
		}
		qty, err := bigFlag(cctx, "quantity")
		if err != nil {
			return err
		}
		price, err := bigFlag(cctx, "price")
		if err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.push(cctx, tx.CreateOrder, &tx.CreateOrderParams{
			Standard: std,
			Contract: contract,
			ItemID:   item,
			Quantity: qty,
			Currency: currency,
			Price:    price,
			Kind:     kind,
		}, nil)
		if err != nil {
			return err
		}

		var id uint64
		if err := r.DecodeReturn(&id); err != nil {
			return err
		}
		fmt.Println("order:", id)
		return nil
	},
}

var orderCancelCmd = &cli.Command{
	Name:      "cancel",
	Usage:     "cancel an open order and take the item back",
	ArgsUsage: "<order id>",
	Flags:     withSendFlags(),
	Action: sendAction(tx.CancelOrder, func(cctx *cli.Context) (interface{}, error) {
		id, err := orderID(cctx)
		if err != nil {
			return nil, err
		}
		return &tx.OrderParams{OrderID: id}, nil
	}),
}

var orderExecuteCmd = &cli.Command{
	Name:      "execute",
	Usage:     "buy an open order",
	ArgsUsage: "<order id>",
	Flags:     withSendFlags(),
	Action: func(cctx *cli.Context) error {
		id, err := orderID(cctx)
		if err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.push(cctx, tx.ExecuteOrder, &tx.ExecuteParams{OrderID: id}, nil)
		if err != nil {
			return err
		}

		st := new(types.Settlement)
		if err := r.DecodeReturn(st); err != nil {
			return err
		}
		printSettlement(st)
		return nil
	},
}

func printSettlement(st *types.Settlement) {
	fmt.Println("Price:", st.Price)
	fmt.Println("Fee:", st.Fee)
	for i, recv := range st.Royalty.Receivers {
		fmt.Printf("Royalty %s: %s\n", recv, st.Royalty.Amounts[i])
	}
	fmt.Println("Seller proceeds:", st.SellerProceeds)
}

var orderGetCmd = &cli.Command{
	Name:      "get",
	Usage:     "show an order",
	ArgsUsage: "<order id>",
	Action: func(cctx *cli.Context) error {
		id, err := orderID(cctx)
		if err != nil {
			return err
		}

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		o, err := napi.OrderDetails(cctx.Context, id)
		if err != nil {
			return err
		}
		if err := printJSON(o); err != nil {
			return err
		}

		if o.Status != types.StatusOpen {
			return nil
		}
		q, err := napi.OrderQuote(cctx.Context, id)
		if err != nil {
			return err
		}
		fmt.Println("If executed now:")
		printSettlement(q)
		return nil
	},
}

type orderRow struct {
	ID       uint64
	Status   string
	Seller   string
	Contract string
	Item     string
	Quantity string
	Currency string
	Price    string
}

var orderListCmd = &cli.Command{
	Name:  "list",
	Usage: "page through orders",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "open, cancelled, executed or any",
			Value: "open",
		},
		&cli.StringFlag{
			Name:  "seller",
			Usage: "only orders of this seller",
		},
		&cli.Uint64Flag{Name: "offset"},
		&cli.Uint64Flag{
			Name:  "limit",
			Value: 20,
		},
	},
	Action: func(cctx *cli.Context) error {
		st, err := types.ParseOrderStatus(cctx.String("status"))
		if err != nil {
			return err
		}
		seller, err := addressFlag(cctx, "seller")
		if err != nil {
			return err
		}

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		var page *types.OrderPage
		if cctx.IsSet("seller") {
			page, err = napi.FetchOrdersBySeller(cctx.Context, seller, st, cctx.Uint64("offset"), cctx.Uint64("limit"))
		} else {
			page, err = napi.FetchOrders(cctx.Context, st, cctx.Uint64("offset"), cctx.Uint64("limit"))
		}
		if err != nil {
			return err
		}

		orders, err := napi.OrderDetailsBatch(cctx.Context, page.IDs)
		if err != nil {
			return err
		}

		rows := make([]orderRow, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, orderRow{
				ID:       o.ID,
				Status:   o.Status.String(),
				Seller:   o.Seller.Hex(),
				Contract: o.Contract.Hex(),
				Item:     o.ItemID.String(),
				Quantity: o.Quantity.String(),
				Currency: o.Currency.Hex(),
				Price:    o.Price.String(),
			})
		}
		table.Output(rows)
		fmt.Printf("%d of %d\n", len(rows), page.Total)
		return nil
	},
}
