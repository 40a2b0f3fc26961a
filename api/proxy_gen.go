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

var _ FullNode = (*FullNodeStruct)(nil)

// FullNodeStruct carries the permission of every method.
type FullNodeStruct struct {
	Internal struct {
		AuthVerify          func(ctx context.Context, token string) ([]auth.Permission, error)                                                            `perm:"read"`
		AuthNew             func(ctx context.Context, perms []auth.Permission) ([]byte, error)                                                            `perm:"admin"`
		ConfigSet           func(ctx context.Context, key string, val string) error                                                                       `perm:"admin"`
		ConfigGet           func(ctx context.Context, key string) (interface{}, error)                                                                    `perm:"write"`
		Version             func(ctx context.Context) (APIVersion, error)                                                                                 `perm:"read"`
		Shutdown            func(ctx context.Context) error                                                                                               `perm:"admin"`
		PushMessage         func(ctx context.Context, sm *tx.SignedMessage) (*tx.Receipt, error)                                                          `perm:"write"`
		GetRoot             func(ctx context.Context) types.MsgID                                                                                         `perm:"read"`
		GetHeight           func(ctx context.Context) uint64                                                                                              `perm:"read"`
		GetNonce            func(ctx context.Context, addr common.Address) (uint64, error)                                                                `perm:"read"`
		GetTxMsg            func(ctx context.Context, mid types.MsgID) (*tx.SignedMessage, error)                                                         `perm:"read"`
		GetMsgByHeight      func(ctx context.Context, height uint64) (types.MsgID, error)                                                                 `perm:"read"`
		GetReceipt          func(ctx context.Context, mid types.MsgID) (*tx.Receipt, error)                                                               `perm:"read"`
		MarketInfo          func(ctx context.Context) (*MarketInfo, error)                                                                                `perm:"read"`
		OrderDetails        func(ctx context.Context, id uint64) (*types.Order, error)                                                                    `perm:"read"`
		OrderDetailsBatch   func(ctx context.Context, ids []uint64) ([]*types.Order, error)                                                               `perm:"read"`
		OrderType           func(ctx context.Context, id uint64) (types.OrderKind, error)                                                                 `perm:"read"`
		OrderQuote          func(ctx context.Context, id uint64) (*types.Settlement, error)                                                               `perm:"read"`
		TotalOrders         func(ctx context.Context, st types.OrderStatus) (uint64, error)                                                               `perm:"read"`
		FetchOrders         func(ctx context.Context, st types.OrderStatus, offset uint64, limit uint64) (*types.OrderPage, error)                        `perm:"read"`
		FetchOrdersBySeller func(ctx context.Context, seller common.Address, st types.OrderStatus, offset uint64, limit uint64) (*types.OrderPage, error) `perm:"read"`
		TradeFeePercent     func(ctx context.Context) (uint64, error)                                                                                     `perm:"read"`
		SettlementTokens    func(ctx context.Context) ([]common.Address, error)                                                                           `perm:"read"`
		IsSettlementToken   func(ctx context.Context, currency common.Address) (bool, error)                                                              `perm:"read"`
		Whitelist           func(ctx context.Context, std types.Standard) ([]common.Address, error)                                                       `perm:"read"`
		IsWhitelisted       func(ctx context.Context, std types.Standard, contract common.Address) (bool, error)                                          `perm:"read"`
		DefaultRoyaltyInfo  func(ctx context.Context, collection common.Address) (types.RoyaltySet, error)                                                `perm:"read"`
		TokenRoyaltyInfo    func(ctx context.Context, collection common.Address, itemID *big.Int) (*TokenRoyalty, error)                                  `perm:"read"`
		CalculateRoyalty    func(ctx context.Context, collection common.Address, itemID *big.Int, price *big.Int) (*types.RoyaltySplit, error)            `perm:"read"`
		CheckRoyalty        func(ctx context.Context, rs types.RoyaltySet) error                                                                          `perm:"read"`
		CollectionInfo      func(ctx context.Context, collection common.Address) (*types.Collection, error)                                               `perm:"read"`
		Collections         func(ctx context.Context) ([]*types.Collection, error)                                                                        `perm:"read"`
		NonceUsed           func(ctx context.Context, collection common.Address, nonce *big.Int) (bool, error)                                            `perm:"read"`
		MintDigest          func(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (common.Hash, error)                        `perm:"read"`
		MintTypedData       func(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (*apitypes.TypedData, error)                `perm:"read"`
		OwnerOf             func(ctx context.Context, contract common.Address, itemID *big.Int) (common.Address, error)                                   `perm:"read"`
		TokenURI            func(ctx context.Context, contract common.Address, itemID *big.Int) (string, error)                                           `perm:"read"`
		BalanceOf           func(ctx context.Context, contract common.Address, itemID *big.Int, holder common.Address) (*big.Int, error)                  `perm:"read"`
		IsApprovedForAll    func(ctx context.Context, contract common.Address, owner common.Address, operator common.Address) (bool, error)               `perm:"read"`
		CurrencyBalance     func(ctx context.Context, currency common.Address, holder common.Address) (*big.Int, error)                                   `perm:"read"`
		Allowance           func(ctx context.Context, currency common.Address, owner common.Address, spender common.Address) (*big.Int, error)            `perm:"read"`
	}
}

func (s *FullNodeStruct) AuthVerify(ctx context.Context, token string) ([]auth.Permission, error) {
	return s.Internal.AuthVerify(ctx, token)
}

func (s *FullNodeStruct) AuthNew(ctx context.Context, perms []auth.Permission) ([]byte, error) {
	return s.Internal.AuthNew(ctx, perms)
}

func (s *FullNodeStruct) ConfigSet(ctx context.Context, key string, val string) error {
	return s.Internal.ConfigSet(ctx, key, val)
}

func (s *FullNodeStruct) ConfigGet(ctx context.Context, key string) (interface{}, error) {
	return s.Internal.ConfigGet(ctx, key)
}

func (s *FullNodeStruct) Version(ctx context.Context) (APIVersion, error) {
	return s.Internal.Version(ctx)
}

func (s *FullNodeStruct) Shutdown(ctx context.Context) error {
	return s.Internal.Shutdown(ctx)
}

func (s *FullNodeStruct) PushMessage(ctx context.Context, sm *tx.SignedMessage) (*tx.Receipt, error) {
	return s.Internal.PushMessage(ctx, sm)
}

func (s *FullNodeStruct) GetRoot(ctx context.Context) types.MsgID {
	return s.Internal.GetRoot(ctx)
}

func (s *FullNodeStruct) GetHeight(ctx context.Context) uint64 {
	return s.Internal.GetHeight(ctx)
}

func (s *FullNodeStruct) GetNonce(ctx context.Context, addr common.Address) (uint64, error) {
	return s.Internal.GetNonce(ctx, addr)
}

func (s *FullNodeStruct) GetMsgByHeight(ctx context.Context, height uint64) (types.MsgID, error) {
	return s.Internal.GetMsgByHeight(ctx, height)
}

func (s *FullNodeStruct) GetTxMsg(ctx context.Context, mid types.MsgID) (*tx.SignedMessage, error) {
	return s.Internal.GetTxMsg(ctx, mid)
}

func (s *FullNodeStruct) GetReceipt(ctx context.Context, mid types.MsgID) (*tx.Receipt, error) {
	return s.Internal.GetReceipt(ctx, mid)
}

func (s *FullNodeStruct) MarketInfo(ctx context.Context) (*MarketInfo, error) {
	return s.Internal.MarketInfo(ctx)
}

func (s *FullNodeStruct) OrderDetails(ctx context.Context, id uint64) (*types.Order, error) {
	return s.Internal.OrderDetails(ctx, id)
}

func (s *FullNodeStruct) OrderDetailsBatch(ctx context.Context, ids []uint64) ([]*types.Order, error) {
	return s.Internal.OrderDetailsBatch(ctx, ids)
}

func (s *FullNodeStruct) OrderType(ctx context.Context, id uint64) (types.OrderKind, error) {
	return s.Internal.OrderType(ctx, id)
}

func (s *FullNodeStruct) OrderQuote(ctx context.Context, id uint64) (*types.Settlement, error) {
	return s.Internal.OrderQuote(ctx, id)
}

func (s *FullNodeStruct) TotalOrders(ctx context.Context, st types.OrderStatus) (uint64, error) {
	return s.Internal.TotalOrders(ctx, st)
}

func (s *FullNodeStruct) FetchOrders(ctx context.Context, st types.OrderStatus, offset uint64, limit uint64) (*types.OrderPage, error) {
	return s.Internal.FetchOrders(ctx, st, offset, limit)
}

func (s *FullNodeStruct) FetchOrdersBySeller(ctx context.Context, seller common.Address, st types.OrderStatus, offset uint64, limit uint64) (*types.OrderPage, error) {
	return s.Internal.FetchOrdersBySeller(ctx, seller, st, offset, limit)
}

func (s *FullNodeStruct) TradeFeePercent(ctx context.Context) (uint64, error) {
	return s.Internal.TradeFeePercent(ctx)
}

func (s *FullNodeStruct) SettlementTokens(ctx context.Context) ([]common.Address, error) {
	return s.Internal.SettlementTokens(ctx)
}

func (s *FullNodeStruct) IsSettlementToken(ctx context.Context, currency common.Address) (bool, error) {
	return s.Internal.IsSettlementToken(ctx, currency)
}

func (s *FullNodeStruct) Whitelist(ctx context.Context, std types.Standard) ([]common.Address, error) {
	return s.Internal.Whitelist(ctx, std)
}

func (s *FullNodeStruct) IsWhitelisted(ctx context.Context, std types.Standard, contract common.Address) (bool, error) {
	return s.Internal.IsWhitelisted(ctx, std, contract)
}

func (s *FullNodeStruct) DefaultRoyaltyInfo(ctx context.Context, collection common.Address) (types.RoyaltySet, error) {
	return s.Internal.DefaultRoyaltyInfo(ctx, collection)
}

func (s *FullNodeStruct) TokenRoyaltyInfo(ctx context.Context, collection common.Address, itemID *big.Int) (*TokenRoyalty, error) {
	return s.Internal.TokenRoyaltyInfo(ctx, collection, itemID)
}

func (s *FullNodeStruct) CalculateRoyalty(ctx context.Context, collection common.Address, itemID *big.Int, price *big.Int) (*types.RoyaltySplit, error) {
	return s.Internal.CalculateRoyalty(ctx, collection, itemID, price)
}

func (s *FullNodeStruct) CheckRoyalty(ctx context.Context, rs types.RoyaltySet) error {
	return s.Internal.CheckRoyalty(ctx, rs)
}

func (s *FullNodeStruct) CollectionInfo(ctx context.Context, collection common.Address) (*types.Collection, error) {
	return s.Internal.CollectionInfo(ctx, collection)
}

func (s *FullNodeStruct) Collections(ctx context.Context) ([]*types.Collection, error) {
	return s.Internal.Collections(ctx)
}

func (s *FullNodeStruct) NonceUsed(ctx context.Context, collection common.Address, nonce *big.Int) (bool, error) {
	return s.Internal.NonceUsed(ctx, collection, nonce)
}

func (s *FullNodeStruct) MintDigest(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (common.Hash, error) {
	return s.Internal.MintDigest(ctx, collection, ma)
}

func (s *FullNodeStruct) MintTypedData(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (*apitypes.TypedData, error) {
	return s.Internal.MintTypedData(ctx, collection, ma)
}

func (s *FullNodeStruct) OwnerOf(ctx context.Context, contract common.Address, itemID *big.Int) (common.Address, error) {
	return s.Internal.OwnerOf(ctx, contract, itemID)
}

func (s *FullNodeStruct) TokenURI(ctx context.Context, contract common.Address, itemID *big.Int) (string, error) {
	return s.Internal.TokenURI(ctx, contract, itemID)
}

func (s *FullNodeStruct) BalanceOf(ctx context.Context, contract common.Address, itemID *big.Int, holder common.Address) (*big.Int, error) {
	return s.Internal.BalanceOf(ctx, contract, itemID, holder)
}

func (s *FullNodeStruct) IsApprovedForAll(ctx context.Context, contract common.Address, owner common.Address, operator common.Address) (bool, error) {
	return s.Internal.IsApprovedForAll(ctx, contract, owner, operator)
}

func (s *FullNodeStruct) CurrencyBalance(ctx context.Context, currency common.Address, holder common.Address) (*big.Int, error) {
	return s.Internal.CurrencyBalance(ctx, currency, holder)
}

func (s *FullNodeStruct) Allowance(ctx context.Context, currency common.Address, owner common.Address, spender common.Address) (*big.Int, error) {
	return s.Internal.Allowance(ctx, currency, owner, spender)
}
