package wallet

import (
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	"github.com/artwhale/go-artwhale/lib/tx"
)

func newWallet(t *testing.T) *Wallet {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	w.SetScrypt(LightScryptN, LightScryptP)
	return w
}

func TestKeyRoundTrip(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	key, err := newKey(priv)
	require.NoError(t, err)

	kj, err := encryptKey(key, "12345678", LightScryptN, LightScryptP)
	require.NoError(t, err)

	nkey, err := decryptKey(kj, "12345678")
	require.NoError(t, err)
	require.Equal(t, key.ID, nkey.ID)
	require.Equal(t, key.Address, nkey.Address)
	require.Equal(t, crypto.FromECDSA(priv), crypto.FromECDSA(nkey.PrivateKey))

	_, err = decryptKey(kj, "wrong")
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestWallet(t *testing.T) {
	w := newWallet(t)

	a1, err := w.Generate("pw")
	require.NoError(t, err)
	a2, err := w.Generate("pw")
	require.NoError(t, err)

	addrs, err := w.List()
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	require.Contains(t, addrs, a1)
	require.Contains(t, addrs, a2)
	require.True(t, w.Has(a1))
	require.False(t, w.Has(common.HexToAddress("0x01")))

	// a reopened wallet needs the password
	w2, err := New(w.dir)
	require.NoError(t, err)

	m, err := tx.NewMessage(a1, 0, tx.CancelOrder, &tx.OrderParams{OrderID: 1})
	require.NoError(t, err)
	_, err = w2.SignMessage(m)
	require.Error(t, err)

	require.ErrorIs(t, w2.Unlock(a1, "bad"), ErrDecrypt)
	require.NoError(t, w2.Unlock(a1, "pw"))

	sm, err := w2.SignMessage(m)
	require.NoError(t, err)
	require.NoError(t, sm.Verify())

	w2.Lock(a1)
	_, err = w2.SignMessage(m)
	require.Error(t, err)

	require.ErrorIs(t, w2.Unlock(common.HexToAddress("0x01"), "pw"), ErrNoKey)
}

func TestSignDigest(t *testing.T) {
	w := newWallet(t)
	addr, err := w.Generate("pw")
	require.NoError(t, err)

	digest := crypto.Keccak256Hash(big.NewInt(42).Bytes())
	sig, err := w.SignDigest(addr, digest)
	require.NoError(t, err)

	got, err := eip712.Recover(digest, sig)
	require.NoError(t, err)
	require.Equal(t, addr, got)
}

func TestImportKeepsExisting(t *testing.T) {
	w := newWallet(t)
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)

	addr, err := w.Import(priv, "first")
	require.NoError(t, err)
	st, err := os.Stat(w.path(addr))
	require.NoError(t, err)

	_, err = w.Import(priv, "second")
	require.NoError(t, err)
	st2, err := os.Stat(w.path(addr))
	require.NoError(t, err)
	require.Equal(t, st.ModTime(), st2.ModTime())

	w2, err := New(w.dir)
	require.NoError(t, err)
	require.NoError(t, w2.Unlock(addr, "first"))
}
