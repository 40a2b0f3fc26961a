package state

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

var (
	currency = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	artist   = common.HexToAddress("0x00000000000000000000000000000000000000a7")
)

type account struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

func newAccount(t *testing.T) *account {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &account{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

type env struct {
	ds store.KVStore
	s  *StateMgr

	owner, seller, buyer, signer *account
}

func newEnv(t *testing.T) *env {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	e := &env{
		ds:     d,
		owner:  newAccount(t),
		seller: newAccount(t),
		buyer:  newAccount(t),
		signer: newAccount(t),
	}

	e.s, err = NewStateMgr(d, &Genesis{
		Owner:           e.owner.addr,
		ChainID:         big.NewInt(5),
		TradeFeePercent: 2,
	})
	require.NoError(t, err)
	e.s.SetClock(func() time.Time { return time.Unix(1000, 0) })

	return e
}

func (e *env) msg(t *testing.T, from *account, method tx.MsgType, params interface{}) *tx.SignedMessage {
	nonce, err := e.s.GetNonce(context.TODO(), from.addr)
	require.NoError(t, err)

	m, err := tx.NewMessage(from.addr, nonce, method, params)
	require.NoError(t, err)
	sm, err := tx.Sign(m, from.key)
	require.NoError(t, err)
	return sm
}

func (e *env) push(t *testing.T, from *account, method tx.MsgType, params interface{}) (*tx.Receipt, error) {
	return e.s.PushMessage(context.TODO(), e.msg(t, from, method, params))
}

func (e *env) must(t *testing.T, from *account, method tx.MsgType, params interface{}) *tx.Receipt {
	r, err := e.push(t, from, method, params)
	require.NoError(t, err, tx.MethodName(method))
	return r
}

func (e *env) balance(t *testing.T, cur, who common.Address) int64 {
	bal, err := e.s.CurrencyBalance(context.TODO(), cur, who)
	require.NoError(t, err)
	return bal.Int64()
}

// collection creates a single owner collection with a 10% default royalty.
func (e *env) collection(t *testing.T) common.Address {
	r := e.must(t, e.owner, tx.CreateCollection, &tx.CollectionParams{
		Name:     "Whales",
		Symbol:   "WHL",
		Standard: types.SingleOwner,
		Signer:   e.signer.addr,
		BaseURI:  "ipfs://",
		Royalty:  types.RoyaltySet{{Receiver: artist, Fraction: 1000}},
	})

	var col common.Address
	require.NoError(t, r.DecodeReturn(&col))
	return col
}

func TestGenesis(t *testing.T) {
	e := newEnv(t)
	ctx := context.TODO()

	mi, err := e.s.MarketInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, e.owner.addr, mi.Owner)
	require.Equal(t, build.MarketAccount, mi.Account)
	require.Equal(t, build.MarketAccount, mi.Treasury)
	require.Equal(t, int64(5), mi.ChainID.Int64())
	require.Equal(t, uint64(2), mi.TradeFeePercent)
	require.Equal(t, uint64(0), mi.Height)
	require.Equal(t, beginRoot, mi.Root)

	toks, err := e.s.SettlementTokens(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.Address{build.NativeCurrency}, toks)

	// reload keeps the stored genesis
	e.must(t, e.owner, tx.AddSettlementToken, &tx.CurrencyParams{Currency: currency})
	root := e.s.GetRoot(ctx)

	s2, err := NewStateMgr(e.ds, nil)
	require.NoError(t, err)
	require.Equal(t, root, s2.GetRoot(ctx))
	require.Equal(t, uint64(1), s2.GetHeight(ctx))
	ok, err := s2.IsSettlementToken(ctx, currency)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEmptyStateNeedsGenesis(t *testing.T) {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	defer d.Close()

	_, err = NewStateMgr(d, nil)
	require.Error(t, err)
}

func TestMessageChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.TODO()

	// failed message keeps nonce, root and height
	_, err := e.push(t, e.buyer, tx.ExecuteOrder, &tx.ExecuteParams{OrderID: 7})
	require.ErrorIs(t, err, types.ErrOrderNotExist)
	nonce, err := e.s.GetNonce(ctx, e.buyer.addr)
	require.NoError(t, err)
	require.Equal(t, uint64(0), nonce)
	require.Equal(t, uint64(0), e.s.GetHeight(ctx))
	require.Equal(t, beginRoot, e.s.GetRoot(ctx))

	// not the market owner
	_, err = e.push(t, e.buyer, tx.AddSettlementToken, &tx.CurrencyParams{Currency: currency})
	require.ErrorIs(t, err, types.ErrNotOwner)

	// stale nonce
	sm := e.msg(t, e.owner, tx.AddSettlementToken, &tx.CurrencyParams{Currency: currency})
	_, err = e.s.PushMessage(ctx, sm)
	require.NoError(t, err)
	_, err = e.s.PushMessage(ctx, sm)
	require.ErrorIs(t, err, types.ErrMsgNonce)

	// tampered message
	sm = e.msg(t, e.owner, tx.SetTradeFeePercent, &tx.FeeParams{Percent: 3})
	sm.From = e.buyer.addr
	_, err = e.s.PushMessage(ctx, sm)
	require.ErrorIs(t, err, types.ErrMsgSignature)

	// value on a method that takes none
	m, err := tx.NewMessage(e.owner.addr, 1, tx.SetTradeFeePercent, &tx.FeeParams{Percent: 3})
	require.NoError(t, err)
	m.Value = big.NewInt(1)
	sm, err = tx.Sign(m, e.owner.key)
	require.NoError(t, err)
	_, err = e.s.PushMessage(ctx, sm)
	require.ErrorIs(t, err, ErrValue)

	// unknown method
	m.Method = 200
	m.Value = big.NewInt(0)
	sm, err = tx.Sign(m, e.owner.key)
	require.NoError(t, err)
	_, err = e.s.PushMessage(ctx, sm)
	require.ErrorIs(t, err, types.ErrMsgMethod)

	require.Equal(t, uint64(1), e.s.GetHeight(ctx))
}

func TestReceipt(t *testing.T) {
	e := newEnv(t)
	ctx := context.TODO()

	sm := e.msg(t, e.owner, tx.AddSettlementToken, &tx.CurrencyParams{Currency: currency})
	r, err := e.s.PushMessage(ctx, sm)
	require.NoError(t, err)

	id, err := sm.ID()
	require.NoError(t, err)
	require.Equal(t, id, r.ID)
	require.Equal(t, beginRoot.Chain(id), r.Root)
	require.Equal(t, r.Root, e.s.GetRoot(ctx))

	got, err := e.s.GetReceipt(ctx, id)
	require.NoError(t, err)
	require.Equal(t, r.Root, got.Root)

	mid, err := e.s.GetMsgByHeight(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, id, mid)

	gm, err := e.s.GetTxMsg(ctx, id)
	require.NoError(t, err)
	require.Equal(t, sm.From, gm.From)
	require.Equal(t, sm.Signature, gm.Signature)
}

func TestMarketFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.TODO()

	e.must(t, e.owner, tx.AddSettlementToken, &tx.CurrencyParams{Currency: currency})
	e.must(t, e.owner, tx.CurrencyMint, &tx.TransferParams{Currency: currency, To: e.buyer.addr, Amount: big.NewInt(1000)})
	e.must(t, e.owner, tx.CurrencyMint, &tx.TransferParams{Currency: build.NativeCurrency, To: e.seller.addr, Amount: big.NewInt(5)})

	col := e.collection(t)
	c, err := e.s.CollectionInfo(ctx, col)
	require.NoError(t, err)
	require.Equal(t, e.owner.addr, c.Owner)
	require.Equal(t, e.owner.addr, c.Treasury)

	e.must(t, e.owner, tx.AddWhitelist, &tx.WhitelistParams{Standard: types.SingleOwner, Contract: col})

	// lazy mint to the seller, paid in native currency
	auth := types.MintAuthorization{
		Target:    e.seller.addr,
		TokenID:   big.NewInt(1),
		URI:       "item-1",
		MintPrice: big.NewInt(5),
		Nonce:     big.NewInt(1),
		Deadline:  big.NewInt(1000),
	}
	td, err := e.s.MintTypedData(ctx, col, &auth)
	require.NoError(t, err)
	require.Equal(t, "Mint", td.PrimaryType)

	digest, err := e.s.MintDigest(ctx, col, &auth)
	require.NoError(t, err)
	sig, err := eip712.Sign(digest, e.signer.key)
	require.NoError(t, err)

	m, err := tx.NewMessage(e.seller.addr, 0, tx.Mint, &tx.MintParams{
		Collection:              col,
		SignedMintAuthorization: types.SignedMintAuthorization{MintAuthorization: auth, Signature: sig},
	})
	require.NoError(t, err)
	m.Value = big.NewInt(5)
	sm, err := tx.Sign(m, e.seller.key)
	require.NoError(t, err)
	_, err = e.s.PushMessage(ctx, sm)
	require.NoError(t, err)

	used, err := e.s.NonceUsed(ctx, col, big.NewInt(1))
	require.NoError(t, err)
	require.True(t, used)
	require.Equal(t, int64(5), e.balance(t, build.NativeCurrency, e.owner.addr))

	uri, err := e.s.TokenURI(ctx, col, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "ipfs://item-1", uri)

	// list, then buy
	e.must(t, e.seller, tx.SetApprovalForAll, &tx.ApprovalParams{Contract: col, Operator: build.MarketAccount, Approved: true})
	r := e.must(t, e.seller, tx.CreateOrder, &tx.CreateOrderParams{
		Standard: types.SingleOwner,
		Contract: col,
		ItemID:   big.NewInt(1),
		Quantity: big.NewInt(1),
		Currency: currency,
		Price:    big.NewInt(100),
	})
	var id uint64
	require.NoError(t, r.DecodeReturn(&id))
	require.Equal(t, uint64(0), id)

	holder, err := e.s.OwnerOf(ctx, col, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, build.MarketAccount, holder)

	q, err := e.s.OrderQuote(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(2), q.Fee.Int64())
	require.Equal(t, int64(10), q.Royalty.Total.Int64())
	require.Equal(t, int64(88), q.SellerProceeds.Int64())

	e.must(t, e.buyer, tx.Approve, &tx.AllowanceParams{Currency: currency, Spender: build.MarketAccount, Amount: big.NewInt(100)})
	r = e.must(t, e.buyer, tx.ExecuteOrder, &tx.ExecuteParams{OrderID: id})

	st := new(types.Settlement)
	require.NoError(t, r.DecodeReturn(st))
	require.Equal(t, e.buyer.addr, st.Buyer)
	require.Equal(t, int64(88), st.SellerProceeds.Int64())

	holder, err = e.s.OwnerOf(ctx, col, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, e.buyer.addr, holder)

	require.Equal(t, int64(900), e.balance(t, currency, e.buyer.addr))
	require.Equal(t, int64(88), e.balance(t, currency, e.seller.addr))
	require.Equal(t, int64(10), e.balance(t, currency, artist))
	require.Equal(t, int64(2), e.balance(t, currency, build.MarketAccount))

	o, err := e.s.OrderDetails(ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.StatusExecuted, o.Status)

	page, err := e.s.FetchOrdersBySeller(ctx, e.seller.addr, types.StatusExecuted, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []uint64{id}, page.IDs)
	require.Equal(t, uint64(1), page.Total)

	// fees leave the market account only through withdraw
	r = e.must(t, e.owner, tx.Withdraw, &tx.WithdrawParams{Currency: currency})
	amount := new(big.Int)
	require.NoError(t, r.DecodeReturn(amount))
	require.Equal(t, int64(2), amount.Int64())
	require.Equal(t, int64(2), e.balance(t, currency, e.owner.addr))
}

func TestRoyaltyMessages(t *testing.T) {
	e := newEnv(t)
	ctx := context.TODO()

	col := e.collection(t)

	// only the collection owner manages royalties
	_, err := e.push(t, e.buyer, tx.SetDefaultRoyalty, &tx.RoyaltyParams{Collection: col})
	require.ErrorIs(t, err, types.ErrNotOwner)

	e.must(t, e.owner, tx.SetTokenRoyalty, &tx.RoyaltyParams{Collection: col, TokenID: big.NewInt(3)})
	tr, err := e.s.TokenRoyaltyInfo(ctx, col, big.NewInt(3))
	require.NoError(t, err)
	require.True(t, tr.Override)
	require.Empty(t, tr.Royalty)

	split, err := e.s.CalculateRoyalty(ctx, col, big.NewInt(3), big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, int64(0), split.Total.Int64())

	e.must(t, e.owner, tx.ResetTokenRoyalty, &tx.RoyaltyParams{Collection: col, TokenID: big.NewInt(3)})
	split, err = e.s.CalculateRoyalty(ctx, col, big.NewInt(3), big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, int64(10), split.Total.Int64())
	require.Equal(t, []common.Address{artist}, split.Receivers)

	require.NoError(t, e.s.CheckRoyalty(ctx, types.RoyaltySet{{Receiver: artist, Fraction: 1000}}))
	err = e.s.CheckRoyalty(ctx, types.RoyaltySet{{Receiver: artist, Fraction: 6000}, {Receiver: artist, Fraction: 5000}})
	require.ErrorIs(t, err, types.ErrWrongSum)
	err = e.s.CheckRoyalty(ctx, types.RoyaltySet{{Fraction: 10}})
	require.ErrorIs(t, err, types.ErrWrongReceiver)
}
