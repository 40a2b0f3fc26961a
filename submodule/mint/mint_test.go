package mint

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/connect/ledger"
)

var (
	owner    = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	treasury = common.HexToAddress("0x00000000000000000000000000000000000000a9")
	buyer    = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	colAddr  = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

type env struct {
	a      *Authorizer
	items  *ledger.ItemLedger
	cur    *ledger.CurrencyLedger
	ds     store.KVStore
	key    *ecdsa.PrivateKey
	col    *types.Collection
	signer common.Address
}

func newEnv(t *testing.T, std types.Standard) *env {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	items := ledger.NewItemLedger()
	cur := ledger.NewCurrencyLedger()
	a := New(big.NewInt(5), items, items, cur)

	col := &types.Collection{
		Address:  colAddr,
		Name:     "Whales",
		Symbol:   "WHL",
		Standard: std,
		Owner:    owner,
		Signer:   crypto.PubkeyToAddress(key.PublicKey),
		Treasury: treasury,
	}
	require.NoError(t, a.CreateCollection(d, col))
	require.NoError(t, cur.Mint(d, build.NativeCurrency, buyer, big.NewInt(1000)))

	return &env{a: a, items: items, cur: cur, ds: d, key: key, col: col, signer: col.Signer}
}

func (e *env) sign(t *testing.T, key *ecdsa.PrivateKey, auth types.MintAuthorization) *types.SignedMintAuthorization {
	sig, err := eip712.SignMint(e.a.Domain(e.col), e.col.Standard, &auth, key)
	require.NoError(t, err)
	return &types.SignedMintAuthorization{MintAuthorization: auth, Signature: sig}
}

func singleAuth(id, nonce int64) types.MintAuthorization {
	return types.MintAuthorization{
		Target:    buyer,
		TokenID:   big.NewInt(id),
		URI:       "ipfs://item",
		MintPrice: big.NewInt(10),
		Nonce:     big.NewInt(nonce),
		Deadline:  big.NewInt(2000),
	}
}

func TestMintSingle(t *testing.T) {
	e := newEnv(t, types.SingleOwner)

	sma := e.sign(t, e.key, singleAuth(1, 1))
	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, sma))

	holder, err := e.items.OwnerOf(e.ds, colAddr, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, buyer, holder)

	bal, err := e.cur.BalanceOf(e.ds, build.NativeCurrency, treasury)
	require.NoError(t, err)
	require.Equal(t, int64(10), bal.Int64())

	used, err := e.a.NonceUsed(e.ds, colAddr, big.NewInt(1))
	require.NoError(t, err)
	require.True(t, used)

	// same nonce, entirely different payload
	other := singleAuth(2, 1)
	other.URI = "ipfs://other"
	other.MintPrice = big.NewInt(0)
	err = e.a.Mint(e.ds, buyer, colAddr, nil, 1000, e.sign(t, e.key, other))
	require.ErrorIs(t, err, types.ErrNonceUsed)

	_, err = e.items.OwnerOf(e.ds, colAddr, big.NewInt(2))
	require.ErrorIs(t, err, types.ErrTokenNotExist)
}

func TestMintRejectsWrappedFields(t *testing.T) {
	e := newEnv(t, types.SingleOwner)
	span := new(big.Int).Lsh(big.NewInt(1), 256)

	sma := e.sign(t, e.key, singleAuth(1, 1))
	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, sma))

	// same signature, nonce and token id shifted by 2^256
	replay := *sma
	replay.Nonce = new(big.Int).Add(sma.Nonce, span)
	replay.TokenID = new(big.Int).Add(sma.TokenID, span)
	err := e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, &replay)
	require.ErrorIs(t, err, types.ErrOutOfRange)

	// expired deadline shifted past now
	late := e.sign(t, e.key, singleAuth(2, 2))
	stale := *late
	stale.Deadline = new(big.Int).Add(late.Deadline, span)
	err = e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 999999, &stale)
	require.ErrorIs(t, err, types.ErrOutOfRange)
	err = e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 999999, late)
	require.ErrorIs(t, err, types.ErrExpiredDeadline)

	neg := *late
	neg.Nonce = big.NewInt(-2)
	err = e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, &neg)
	require.ErrorIs(t, err, types.ErrOutOfRange)

	_, err = e.a.NonceUsed(e.ds, colAddr, replay.Nonce)
	require.ErrorIs(t, err, types.ErrOutOfRange)
	_, err = e.a.MintDigest(e.ds, colAddr, &replay.MintAuthorization)
	require.ErrorIs(t, err, types.ErrOutOfRange)

	_, err = e.items.OwnerOf(e.ds, colAddr, replay.TokenID)
	require.ErrorIs(t, err, types.ErrTokenNotExist)
	bal, err := e.cur.BalanceOf(e.ds, build.NativeCurrency, treasury)
	require.NoError(t, err)
	require.Equal(t, int64(10), bal.Int64())
}

func TestMintValidationOrder(t *testing.T) {
	e := newEnv(t, types.SingleOwner)
	stranger, err := crypto.GenerateKey()
	require.NoError(t, err)

	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, e.sign(t, e.key, singleAuth(1, 1))))

	// used nonce wins over every later check
	bad := e.sign(t, stranger, singleAuth(9, 1))
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(3), 5000, bad), types.ErrNonceUsed)

	// deadline before price and signature
	bad = e.sign(t, stranger, singleAuth(9, 2))
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(3), 2001, bad), types.ErrExpiredDeadline)

	// deadline is inclusive
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(3), 2000, bad), types.ErrWrongMintPrice)

	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 2000, bad), types.ErrInvalidSignature)

	good := e.sign(t, e.key, singleAuth(9, 2))
	good.Signature[3] ^= 0xff
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 2000, good), types.ErrInvalidSignature)

	used, err := e.a.NonceUsed(e.ds, colAddr, big.NewInt(2))
	require.NoError(t, err)
	require.False(t, used)
}

func TestMintDomainBound(t *testing.T) {
	e := newEnv(t, types.SingleOwner)

	auth := singleAuth(1, 1)
	d := e.a.Domain(e.col)
	d.VerifyingContract = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	sig, err := eip712.SignMint(d, types.SingleOwner, &auth, e.key)
	require.NoError(t, err)

	sma := &types.SignedMintAuthorization{MintAuthorization: auth, Signature: sig}
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, sma), types.ErrInvalidSignature)
}

func TestMintMulti(t *testing.T) {
	e := newEnv(t, types.MultiBalance)

	auth := types.MintAuthorization{
		Target:    buyer,
		TokenID:   big.NewInt(4),
		Amount:    big.NewInt(25),
		MintPrice: big.NewInt(0),
		Nonce:     big.NewInt(7),
		Deadline:  big.NewInt(2000),
	}
	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, nil, 1000, e.sign(t, e.key, auth)))

	bal, err := e.items.BalanceOf(e.ds, colAddr, big.NewInt(4), buyer)
	require.NoError(t, err)
	require.Equal(t, int64(25), bal.Int64())

	auth.Nonce = big.NewInt(8)
	auth.Amount = big.NewInt(0)
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, nil, 1000, e.sign(t, e.key, auth)), types.ErrWrongAmount)
}

func TestSignerRotation(t *testing.T) {
	e := newEnv(t, types.SingleOwner)
	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, e.sign(t, e.key, singleAuth(1, 1))))

	next, err := crypto.GenerateKey()
	require.NoError(t, err)
	nextAddr := crypto.PubkeyToAddress(next.PublicKey)

	require.ErrorIs(t, e.a.SetSigner(e.ds, buyer, colAddr, nextAddr), types.ErrNotOwner)
	require.NoError(t, e.a.SetSigner(e.ds, owner, colAddr, nextAddr))

	c, err := e.a.Collection(e.ds, colAddr)
	require.NoError(t, err)
	require.Equal(t, nextAddr, c.Signer)
	e.col = c

	// old signer is no longer trusted
	require.ErrorIs(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, e.sign(t, e.key, singleAuth(2, 2))), types.ErrInvalidSignature)

	// fresh nonce space for the new signer
	require.NoError(t, e.a.Mint(e.ds, buyer, colAddr, big.NewInt(10), 1000, e.sign(t, next, singleAuth(2, 1))))
}

func TestOperatorMint(t *testing.T) {
	e := newEnv(t, types.SingleOwner)
	operator := common.HexToAddress("0x00000000000000000000000000000000000000d0")

	err := e.a.OperatorMint(e.ds, operator, colAddr, buyer, big.NewInt(3), nil, "ipfs://op")
	require.ErrorIs(t, err, types.ErrNotOperator)

	require.ErrorIs(t, e.a.SetOperator(e.ds, operator, colAddr, operator), types.ErrNotOwner)
	require.NoError(t, e.a.SetOperator(e.ds, owner, colAddr, operator))
	require.NoError(t, e.a.OperatorMint(e.ds, operator, colAddr, buyer, big.NewInt(3), nil, "ipfs://op"))

	uri, err := e.items.TokenURI(e.ds, colAddr, big.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "ipfs://op", uri)

	err = e.a.OperatorMint(e.ds, operator, colAddr, buyer, big.NewInt(3), nil, "ipfs://op")
	require.ErrorIs(t, err, types.ErrTokenMinted)
}

func TestCollections(t *testing.T) {
	e := newEnv(t, types.SingleOwner)

	require.Error(t, e.a.CreateCollection(e.ds, e.col))

	_, err := e.a.Collection(e.ds, buyer)
	require.ErrorIs(t, err, types.ErrCollectionNotExist)

	bad := *e.col
	bad.Address = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	bad.Standard = types.StandardNone
	require.ErrorIs(t, e.a.CreateCollection(e.ds, &bad), types.ErrWrongStandard)

	cols, err := e.a.Collections(e.ds)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	require.Equal(t, "Whales", cols[0].Name)
}
