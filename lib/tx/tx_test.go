package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/types"
)

func TestMessage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	msg, err := NewMessage(from, 3, CreateOrder, &CreateOrderParams{
		Standard: types.SingleOwner,
		ItemID:   big.NewInt(1),
		Quantity: big.NewInt(1),
		Price:    big.NewInt(100),
		Kind:     types.Authority,
	})
	require.NoError(t, err)

	sm, err := Sign(msg, key)
	require.NoError(t, err)
	require.NoError(t, sm.Verify())

	b, err := sm.Serialize()
	require.NoError(t, err)

	nsm := new(SignedMessage)
	require.NoError(t, nsm.Deserialize(b))
	require.NoError(t, nsm.Verify())
	require.Equal(t, uint64(3), nsm.Nonce)

	id1, err := sm.ID()
	require.NoError(t, err)
	id2, err := nsm.ID()
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	p := new(CreateOrderParams)
	require.NoError(t, nsm.DecodeParams(p))
	require.Equal(t, types.Authority, p.Kind)
	require.Equal(t, int64(100), p.Price.Int64())

	// tampered after signing
	nsm.Nonce = 4
	require.ErrorIs(t, nsm.Verify(), types.ErrMsgSignature)
}

func TestBadParams(t *testing.T) {
	m := &Message{Method: CreateOrder, Params: []byte{0xff, 0x00}}
	err := m.DecodeParams(new(CreateOrderParams))
	require.ErrorIs(t, err, types.ErrMsgParams)
	require.Equal(t, types.KindValidation, types.KindOf(err))

	require.False(t, ValidMethod(DataTxErr))
	require.True(t, ValidMethod(CurrencyMint))
	require.Equal(t, "ExecuteOrder", MethodName(ExecuteOrder))
}

func TestTxStore(t *testing.T) {
	ds, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	defer ds.Close()

	ts, err := NewTxStore(ds)
	require.NoError(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	msg, err := NewMessage(crypto.PubkeyToAddress(key.PublicKey), 0, CancelOrder, &OrderParams{OrderID: 1})
	require.NoError(t, err)
	sm, err := Sign(msg, key)
	require.NoError(t, err)
	id, err := sm.ID()
	require.NoError(t, err)

	txn, err := ds.NewTxnStore(true)
	require.NoError(t, err)
	require.NoError(t, ts.PutApplied(txn, sm, &Receipt{ID: id, Method: CancelOrder, Height: 0}))
	require.NoError(t, txn.Commit())

	got, err := ts.GetTXMsg(id)
	require.NoError(t, err)
	require.Equal(t, sm.Signature, got.Signature)

	r, err := ts.GetReceipt(id)
	require.NoError(t, err)
	require.Equal(t, CancelOrder, r.Method)

	hid, err := ts.GetMsgByHeight(0)
	require.NoError(t, err)
	require.Equal(t, id, hid)
}
