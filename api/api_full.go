package api

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
)

type FullNode interface {
	IAuth
	IConfig
	IState
	IMarket
	IRoyalty
	IMint
	ILedger

	Version(context.Context) (APIVersion, error)
	Shutdown(context.Context) error
}

// json api auth and verify
type IAuth interface {
	AuthVerify(context.Context, string) ([]auth.Permission, error)
	AuthNew(context.Context, []auth.Permission) ([]byte, error)
}

// config
type IConfig interface {
	ConfigSet(context.Context, string, string) error
	ConfigGet(context.Context, string) (interface{}, error)
}

type IState interface {
	PushMessage(context.Context, *tx.SignedMessage) (*tx.Receipt, error)

	GetRoot(context.Context) types.MsgID
	GetHeight(context.Context) uint64
	GetNonce(context.Context, common.Address) (uint64, error)

	GetMsgByHeight(context.Context, uint64) (types.MsgID, error)
	GetTxMsg(context.Context, types.MsgID) (*tx.SignedMessage, error)
	GetReceipt(context.Context, types.MsgID) (*tx.Receipt, error)
}

type IMarket interface {
	MarketInfo(context.Context) (*MarketInfo, error)

	OrderDetails(context.Context, uint64) (*types.Order, error)
	OrderDetailsBatch(context.Context, []uint64) ([]*types.Order, error)
	OrderType(context.Context, uint64) (types.OrderKind, error)
	OrderQuote(context.Context, uint64) (*types.Settlement, error)
	TotalOrders(context.Context, types.OrderStatus) (uint64, error)
	FetchOrders(ctx context.Context, st types.OrderStatus, offset, limit uint64) (*types.OrderPage, error)
	FetchOrdersBySeller(ctx context.Context, seller common.Address, st types.OrderStatus, offset, limit uint64) (*types.OrderPage, error)

	TradeFeePercent(context.Context) (uint64, error)
	SettlementTokens(context.Context) ([]common.Address, error)
	IsSettlementToken(context.Context, common.Address) (bool, error)
	Whitelist(context.Context, types.Standard) ([]common.Address, error)
	IsWhitelisted(context.Context, types.Standard, common.Address) (bool, error)
}

type IRoyalty interface {
	DefaultRoyaltyInfo(ctx context.Context, collection common.Address) (types.RoyaltySet, error)
	TokenRoyaltyInfo(ctx context.Context, collection common.Address, itemID *big.Int) (*TokenRoyalty, error)
	CalculateRoyalty(ctx context.Context, collection common.Address, itemID, price *big.Int) (*types.RoyaltySplit, error)
	CheckRoyalty(ctx context.Context, rs types.RoyaltySet) error
}

type IMint interface {
	CollectionInfo(context.Context, common.Address) (*types.Collection, error)
	Collections(context.Context) ([]*types.Collection, error)
	NonceUsed(ctx context.Context, collection common.Address, nonce *big.Int) (bool, error)
	MintDigest(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (common.Hash, error)
	MintTypedData(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (*apitypes.TypedData, error)
}

type ILedger interface {
	OwnerOf(ctx context.Context, contract common.Address, itemID *big.Int) (common.Address, error)
	TokenURI(ctx context.Context, contract common.Address, itemID *big.Int) (string, error)
	BalanceOf(ctx context.Context, contract common.Address, itemID *big.Int, holder common.Address) (*big.Int, error)
	IsApprovedForAll(ctx context.Context, contract, owner, operator common.Address) (bool, error)
	CurrencyBalance(ctx context.Context, currency, holder common.Address) (*big.Int, error)
	Allowance(ctx context.Context, currency, owner, spender common.Address) (*big.Int, error)
}

type APIVersion struct {
	Version    string
	APIVersion uint32
}

type MarketInfo struct {
	Owner           common.Address
	Account         common.Address // holds escrowed items and fees
	Treasury        common.Address
	ChainID         *big.Int
	TradeFeePercent uint64
	Height          uint64
	Root            types.MsgID
}

type TokenRoyalty struct {
	Royalty  types.RoyaltySet
	Override bool // false: the item follows the default set
}
