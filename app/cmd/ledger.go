package cmd

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
)

var LedgerCmd = &cli.Command{
	Name:  "ledger",
	Usage: "Move and inspect items and currencies",
	Subcommands: []*cli.Command{
		ledgerApproveAllCmd,
		ledgerApproveCmd,
		ledgerTransferCmd,
		ledgerFaucetCmd,
		ledgerBalanceCmd,
	},
}

var ledgerApproveAllCmd = &cli.Command{
	Name:  "approve-all",
	Usage: "let an operator move all your items of a contract",
	Flags: withSendFlags(
		&cli.StringFlag{Name: contractKwd, Required: true},
		&cli.StringFlag{
			Name:  "operator",
			Usage: "defaults to the market account",
		},
		&cli.BoolFlag{
			Name:  "revoke",
			Usage: "withdraw the approval",
		},
	),
	Action: func(cctx *cli.Context) error {
		contract, err := requiredAddress(cctx, contractKwd)
		if err != nil {
			return err
		}
		op, err := addressFlag(cctx, "operator")
		if err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if op == (common.Address{}) {
			mi, err := s.api.MarketInfo(cctx.Context)
			if err != nil {
				return err
			}
			op = mi.Account
		}

		_, err = s.push(cctx, tx.SetApprovalForAll, &tx.ApprovalParams{
			Contract: contract,
			Operator: op,
			Approved: !cctx.Bool("revoke"),
		}, nil)
		return err
	},
}

var ledgerApproveCmd = &cli.Command{
	Name:  "approve",
	Usage: "set the currency allowance of a spender",
	Flags: withSendFlags(
		currencyFlag,
		&cli.StringFlag{
			Name:  "spender",
			Usage: "defaults to the market account",
		},
		&cli.StringFlag{Name: "amount", Required: true},
	),
	Action: func(cctx *cli.Context) error {
		currency, err := requiredAddress(cctx, currencyKwd)
		if err != nil {
			return err
		}
		spender, err := addressFlag(cctx, "spender")
		if err != nil {
			return err
		}
		amount, err := bigFlag(cctx, "amount")
		if err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if spender == (common.Address{}) {
			mi, err := s.api.MarketInfo(cctx.Context)
			if err != nil {
				return err
			}
			spender = mi.Account
		}

		_, err = s.push(cctx, tx.Approve, &tx.AllowanceParams{
			Currency: currency,
			Spender:  spender,
			Amount:   amount,
		}, nil)
		return err
	},
}

var transferFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  currencyKwd,
		Usage: "currency address, empty for native",
	},
	&cli.StringFlag{Name: "to", Required: true},
	&cli.StringFlag{Name: "amount", Required: true},
}

func transferParams(cctx *cli.Context) (interface{}, error) {
	currency, err := addressFlag(cctx, currencyKwd)
	if err != nil {
		return nil, err
	}
	to, err := requiredAddress(cctx, "to")
	if err != nil {
		return nil, err
	}
	amount, err := bigFlag(cctx, "amount")
	if err != nil {
		return nil, err
	}
	return &tx.TransferParams{Currency: currency, To: to, Amount: amount}, nil
}

var ledgerTransferCmd = &cli.Command{
	Name:   "transfer",
	Usage:  "send currency",
	Flags:  withSendFlags(transferFlags...),
	Action: sendAction(tx.Transfer, transferParams),
}

var ledgerFaucetCmd = &cli.Command{
	Name:   "faucet",
	Usage:  "mint a registered currency to an account, market owner only",
	Flags:  withSendFlags(transferFlags...),
	Action: sendAction(tx.CurrencyMint, transferParams),
}

var ledgerBalanceCmd = &cli.Command{
	Name:      "balance",
	Usage:     "show a currency balance, or an item balance with --contract",
	ArgsUsage: "<holder>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  currencyKwd,
			Usage: "currency address, empty for native",
		},
		&cli.StringFlag{
			Name:  contractKwd,
			Usage: "item contract address",
		},
		&cli.StringFlag{
			Name:  itemKwd,
			Usage: "item id, required with --contract",
		},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return xerrors.New("need one holder address")
		}
		holder, err := parseAddress(cctx.Args().First())
		if err != nil {
			return err
		}

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		if cctx.String(contractKwd) == "" {
			currency, err := addressFlag(cctx, currencyKwd)
			if err != nil {
				return err
			}
			bal, err := napi.CurrencyBalance(cctx.Context, currency, holder)
			if err != nil {
				return err
			}
			fmt.Println(bal)
			return nil
		}

		contract, err := parseAddress(cctx.String(contractKwd))
		if err != nil {
			return err
		}
		item, err := bigFlag(cctx, itemKwd)
		if err != nil {
			return err
		}
		bal, err := napi.BalanceOf(cctx.Context, contract, item, holder)
		if err != nil {
			return err
		}
		fmt.Println(bal)

		if owner, err := napi.OwnerOf(cctx.Context, contract, item); err == nil {
			fmt.Println("owner:", owner)
			if uri, err := napi.TokenURI(cctx.Context, contract, item); err == nil && uri != "" {
				fmt.Println("uri:", uri)
			}
		}
		return nil
	},
}

var WithdrawCmd = &cli.Command{
	Name:  "withdraw",
	Usage: "move collected trade fees to the market owner",
	Flags: withSendFlags(
		&cli.StringFlag{
			Name:  currencyKwd,
			Usage: "currency address, empty for native",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "defaults to the whole balance",
		},
	),
	Action: func(cctx *cli.Context) error {
		currency, err := addressFlag(cctx, currencyKwd)
		if err != nil {
			return err
		}
		p := &tx.WithdrawParams{Currency: currency}
		if cctx.String("amount") != "" {
			p.Amount, err = bigFlag(cctx, "amount")
			if err != nil {
				return err
			}
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.push(cctx, tx.Withdraw, p, nil)
		if err != nil {
			return err
		}

		got := new(big.Int)
		if err := r.DecodeReturn(got); err != nil {
			return err
		}
		fmt.Println("withdrawn:", got.String())
		return nil
	},
}
