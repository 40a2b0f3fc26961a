package state

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

var (
	_ api.IState   = (*StateMgr)(nil)
	_ api.IMarket  = (*StateMgr)(nil)
	_ api.IRoyalty = (*StateMgr)(nil)
	_ api.IMint    = (*StateMgr)(nil)
	_ api.ILedger  = (*StateMgr)(nil)
)

func (s *StateMgr) PushMessage(ctx context.Context, sm *tx.SignedMessage) (*tx.Receipt, error) {
	return s.ApplyMsg(ctx, sm)
}

func (s *StateMgr) GetRoot(ctx context.Context) types.MsgID {
	s.RLock()
	defer s.RUnlock()

	return s.root
}

func (s *StateMgr) GetHeight(ctx context.Context) uint64 {
	s.RLock()
	defer s.RUnlock()

	return s.height
}

func (s *StateMgr) GetNonce(ctx context.Context, addr common.Address) (nonce uint64, err error) {
	err = s.view(func(st store.Store) error {
		nonce, err = s.getNonce(st, addr)
		return err
	})
	return nonce, err
}

func (s *StateMgr) GetMsgByHeight(ctx context.Context, height uint64) (types.MsgID, error) {
	return s.txs.GetMsgByHeight(height)
}

func (s *StateMgr) GetTxMsg(ctx context.Context, mid types.MsgID) (*tx.SignedMessage, error) {
	return s.txs.GetTXMsg(mid)
}

func (s *StateMgr) GetReceipt(ctx context.Context, mid types.MsgID) (*tx.Receipt, error) {
	return s.txs.GetReceipt(mid)
}

func (s *StateMgr) MarketInfo(ctx context.Context) (*api.MarketInfo, error) {
	s.RLock()
	mi := &api.MarketInfo{
		Account:  s.market.Address(),
		Treasury: s.market.Treasury(),
		ChainID:  s.minter.ChainID(),
		Height:   s.height,
		Root:     s.root,
	}
	s.RUnlock()

	err := s.view(func(st store.Store) (err error) {
		mi.Owner, err = s.gate.Owner(st)
		if err != nil {
			return err
		}
		mi.TradeFeePercent, err = s.reg.TradeFeePercent(st)
		return err
	})
	return mi, err
}

func (s *StateMgr) OrderDetails(ctx context.Context, id uint64) (o *types.Order, err error) {
	err = s.view(func(st store.Store) error {
		o, err = s.market.OrderDetails(st, id)
		return err
	})
	return o, err
}

func (s *StateMgr) OrderDetailsBatch(ctx context.Context, ids []uint64) (res []*types.Order, err error) {
	err = s.view(func(st store.Store) error {
		res, err = s.market.OrderDetailsBatch(st, ids)
		return err
	})
	return res, err
}

func (s *StateMgr) OrderType(ctx context.Context, id uint64) (kind types.OrderKind, err error) {
	err = s.view(func(st store.Store) error {
		kind, err = s.market.OrderKind(st, id)
		return err
	})
	return kind, err
}

// OrderQuote previews the split an execution would make now.
func (s *StateMgr) OrderQuote(ctx context.Context, id uint64) (res *types.Settlement, err error) {
	err = s.view(func(st store.Store) error {
		o, err := s.market.OrderDetails(st, id)
		if err != nil {
			return err
		}
		if o.Status != types.StatusOpen {
			return types.ErrOrderNotOpen
		}
		res, err = s.market.Quote(st, o)
		return err
	})
	return res, err
}

func (s *StateMgr) TotalOrders(ctx context.Context, status types.OrderStatus) (n uint64, err error) {
	err = s.view(func(st store.Store) error {
		n, err = s.market.TotalOrders(st, status)
		return err
	})
	return n, err
}

func (s *StateMgr) FetchOrders(ctx context.Context, status types.OrderStatus, offset, limit uint64) (page *types.OrderPage, err error) {
	err = s.view(func(st store.Store) error {
		page, err = s.market.FetchOrders(st, status, offset, limit)
		return err
	})
	return page, err
}

func (s *StateMgr) FetchOrdersBySeller(ctx context.Context, seller common.Address, status types.OrderStatus, offset, limit uint64) (page *types.OrderPage, err error) {
	err = s.view(func(st store.Store) error {
		page, err = s.market.FetchOrdersBySeller(st, seller, status, offset, limit)
		return err
	})
	return page, err
}

func (s *StateMgr) TradeFeePercent(ctx context.Context) (fee uint64, err error) {
	err = s.view(func(st store.Store) error {
		fee, err = s.reg.TradeFeePercent(st)
		return err
	})
	return fee, err
}

func (s *StateMgr) SettlementTokens(ctx context.Context) (res []common.Address, err error) {
	err = s.view(func(st store.Store) error {
		res, err = s.reg.SettlementTokens(st)
		return err
	})
	return res, err
}

func (s *StateMgr) IsSettlementToken(ctx context.Context, currency common.Address) (ok bool, err error) {
	err = s.view(func(st store.Store) error {
		ok, err = s.reg.IsSettlementToken(st, currency)
		return err
	})
	return ok, err
}

func (s *StateMgr) Whitelist(ctx context.Context, std types.Standard) (res []common.Address, err error) {
	err = s.view(func(st store.Store) error {
		res, err = s.reg.Whitelist(st, std)
		return err
	})
	return res, err
}

func (s *StateMgr) IsWhitelisted(ctx context.Context, std types.Standard, contract common.Address) (ok bool, err error) {
	err = s.view(func(st store.Store) error {
		ok, err = s.reg.IsWhitelisted(st, std, contract)
		return err
	})
	return ok, err
}

func (s *StateMgr) DefaultRoyaltyInfo(ctx context.Context, collection common.Address) (rs types.RoyaltySet, err error) {
	err = s.view(func(st store.Store) error {
		rs, err = s.royalty.DefaultRoyaltyInfo(st, collection)
		return err
	})
	return rs, err
}

func (s *StateMgr) TokenRoyaltyInfo(ctx context.Context, collection common.Address, itemID *big.Int) (*api.TokenRoyalty, error) {
	res := new(api.TokenRoyalty)
	err := s.view(func(st store.Store) (err error) {
		res.Royalty, res.Override, err = s.royalty.TokenRoyaltyInfo(st, collection, itemID)
		return err
	})
	return res, err
}

func (s *StateMgr) CalculateRoyalty(ctx context.Context, collection common.Address, itemID, price *big.Int) (*types.RoyaltySplit, error) {
	var res types.RoyaltySplit
	err := s.view(func(st store.Store) (err error) {
		res, err = s.royalty.CalculateRoyalty(st, collection, itemID, price)
		return err
	})
	return &res, err
}

// CheckRoyalty validates rs without touching state.
func (s *StateMgr) CheckRoyalty(ctx context.Context, rs types.RoyaltySet) error {
	return types.CheckRoyalty(rs)
}

func (s *StateMgr) CollectionInfo(ctx context.Context, collection common.Address) (c *types.Collection, err error) {
	err = s.view(func(st store.Store) error {
		c, err = s.minter.Collection(st, collection)
		return err
	})
	return c, err
}

func (s *StateMgr) Collections(ctx context.Context) (res []*types.Collection, err error) {
	err = s.view(func(st store.Store) error {
		res, err = s.minter.Collections(st)
		return err
	})
	return res, err
}

func (s *StateMgr) NonceUsed(ctx context.Context, collection common.Address, nonce *big.Int) (used bool, err error) {
	err = s.view(func(st store.Store) error {
		used, err = s.minter.NonceUsed(st, collection, nonce)
		return err
	})
	return used, err
}

func (s *StateMgr) MintDigest(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (h common.Hash, err error) {
	err = s.view(func(st store.Store) error {
		h, err = s.minter.MintDigest(st, collection, ma)
		return err
	})
	return h, err
}

// MintTypedData is the eth_signTypedData_v4 payload for an authorization.
func (s *StateMgr) MintTypedData(ctx context.Context, collection common.Address, ma *types.MintAuthorization) (*apitypes.TypedData, error) {
	c, err := s.CollectionInfo(ctx, collection)
	if err != nil {
		return nil, err
	}
	td, err := eip712.TypedData(s.minter.Domain(c), c.Standard, ma)
	if err != nil {
		return nil, err
	}
	return &td, nil
}

func (s *StateMgr) OwnerOf(ctx context.Context, contract common.Address, itemID *big.Int) (owner common.Address, err error) {
	err = s.view(func(st store.Store) error {
		owner, err = s.items.OwnerOf(st, contract, itemID)
		return err
	})
	return owner, err
}

// TokenURI prefixes the base uri of hosted collections.
func (s *StateMgr) TokenURI(ctx context.Context, contract common.Address, itemID *big.Int) (uri string, err error) {
	err = s.view(func(st store.Store) error {
		uri, err = s.items.TokenURI(st, contract, itemID)
		if err != nil {
			return err
		}
		c, err := s.minter.Collection(st, contract)
		if err != nil {
			if xerrors.Is(err, types.ErrCollectionNotExist) {
				return nil
			}
			return err
		}
		uri = c.BaseURI + uri
		return nil
	})
	return uri, err
}

func (s *StateMgr) BalanceOf(ctx context.Context, contract common.Address, itemID *big.Int, holder common.Address) (bal *big.Int, err error) {
	err = s.view(func(st store.Store) error {
		bal, err = s.items.BalanceOf(st, contract, itemID, holder)
		return err
	})
	return bal, err
}

func (s *StateMgr) IsApprovedForAll(ctx context.Context, contract, owner, operator common.Address) (ok bool, err error) {
	err = s.view(func(st store.Store) error {
		ok, err = s.items.IsApprovedForAll(st, contract, owner, operator)
		return err
	})
	return ok, err
}

func (s *StateMgr) CurrencyBalance(ctx context.Context, currency, holder common.Address) (bal *big.Int, err error) {
	err = s.view(func(st store.Store) error {
		bal, err = s.cur.BalanceOf(st, currency, holder)
		return err
	})
	return bal, err
}

func (s *StateMgr) Allowance(ctx context.Context, currency, owner, spender common.Address) (amount *big.Int, err error) {
	err = s.view(func(st store.Store) error {
		amount, err = s.cur.Allowance(st, currency, owner, spender)
		return err
	})
	return amount, err
}
