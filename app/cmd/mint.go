package cmd

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
)

var MintCmd = &cli.Command{
	Name:  "mint",
	Usage: "Issue and redeem lazy mint authorizations",
	Subcommands: []*cli.Command{
		mintSignCmd,
		mintRedeemCmd,
		mintOperatorCmd,
	},
}

// mintVoucher is the file a signer hands to the buyer.
type mintVoucher struct {
	Collection common.Address
	types.MintAuthorization
	Signature hexutil.Bytes
}

var mintItemFlags = []cli.Flag{
	collectionFlag,
	&cli.StringFlag{
		Name:     "to",
		Usage:    "receiver of the minted item",
		Required: true,
	},
	itemFlag,
	&cli.StringFlag{
		Name:  "amount",
		Usage: "balance to mint on multi balance collections",
		Value: "1",
	},
	&cli.StringFlag{
		Name:  "uri",
		Usage: "token uri on single owner collections",
	},
}

var mintSignCmd = &cli.Command{
	Name:  "sign",
	Usage: "sign a mint authorization as the collection signer",
	Flags: withSendFlags(append(mintItemFlags,
		&cli.StringFlag{
			Name:  "price",
			Usage: "native payment the redeemer must attach",
			Value: "0",
		},
		&cli.StringFlag{
			Name:     "nonce",
			Usage:    "unused nonce of the signer in this collection",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "valid",
			Usage: "how long the authorization can be redeemed",
			Value: 24 * time.Hour,
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "write the voucher to this file instead of stdout",
		},
	)...),
	Action: func(cctx *cli.Context) error {
		collection, err := requiredAddress(cctx, collectionKwd)
		if err != nil {
			return err
		}
		ma, err := mintAuthorization(cctx)
		if err != nil {
			return err
		}

		w, signer, err := unlockSigner(cctx)
		if err != nil {
			return err
		}
		defer w.Lock(signer)

		napi, closer, err := getAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		c, err := napi.CollectionInfo(cctx.Context, collection)
		if err != nil {
			return err
		}
		if c.Signer != signer {
			logger.Warnf("%s is not the signer of %s, redeeming will fail", signer, collection)
		}

		used, err := napi.NonceUsed(cctx.Context, collection, ma.Nonce)
		if err != nil {
			return err
		}
		if used {
			logger.Warnf("nonce %s is already used", ma.Nonce)
		}

		digest, err := napi.MintDigest(cctx.Context, collection, ma)
		if err != nil {
			return err
		}
		sig, err := w.SignDigest(signer, digest)
		if err != nil {
			return err
		}

		b, err := json.MarshalIndent(&mintVoucher{
			Collection:        collection,
			MintAuthorization: *ma,
			Signature:         sig,
		}, "", "\t")
		if err != nil {
			return err
		}

		if out := cctx.String("out"); out != "" {
			return os.WriteFile(out, b, 0644)
		}
		fmt.Println(string(b))
		return nil
	},
}

func mintAuthorization(cctx *cli.Context) (*types.MintAuthorization, error) {
	to, err := requiredAddress(cctx, "to")
	if err != nil {
		return nil, err
	}
	item, err := bigFlag(cctx, itemKwd)
	if err != nil {
		return nil, err
	}
	amount, err := bigFlag(cctx, "amount")
	if err != nil {
		return nil, err
	}
	price, err := bigFlag(cctx, "price")
	if err != nil {
		return nil, err
	}
	nonce, err := bigFlag(cctx, "nonce")
	if err != nil {
		return nil, err
	}

	return &types.MintAuthorization{
		Target:    to,
		TokenID:   item,
		Amount:    amount,
		URI:       cctx.String("uri"),
		MintPrice: price,
		Nonce:     nonce,
		Deadline:  big.NewInt(time.Now().Add(cctx.Duration("valid")).Unix()),
	}, nil
}

var mintRedeemCmd = &cli.Command{
	Name:      "redeem",
	Usage:     "mint with a signed voucher, paying its price",
	ArgsUsage: "<voucher file>",
	Flags:     withSendFlags(),
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return xerrors.New("need one voucher file")
		}
		b, err := os.ReadFile(cctx.Args().First())
		if err != nil {
			return err
		}
		var v mintVoucher
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		_, err = s.push(cctx, tx.Mint, &tx.MintParams{
			Collection: v.Collection,
			SignedMintAuthorization: types.SignedMintAuthorization{
				MintAuthorization: v.MintAuthorization,
				Signature:         v.Signature,
			},
		}, v.MintPrice)
		return err
	},
}

var mintOperatorCmd = &cli.Command{
	Name:  "operator",
	Usage: "mint directly as the collection operator",
	Flags: withSendFlags(mintItemFlags...),
	Action: sendAction(tx.OperatorMint, func(cctx *cli.Context) (interface{}, error) {
		collection, err := requiredAddress(cctx, collectionKwd)
		if err != nil {
			return nil, err
		}
		to, err := requiredAddress(cctx, "to")
		if err != nil {
			return nil, err
		}
		item, err := bigFlag(cctx, itemKwd)
		if err != nil {
			return nil, err
		}
		amount, err := bigFlag(cctx, "amount")
		if err != nil {
			return nil, err
		}
		return &tx.OperatorMintParams{
			Collection: collection,
			To:         to,
			TokenID:    item,
			Amount:     amount,
			URI:        cctx.String("uri"),
		}, nil
	}),
}
