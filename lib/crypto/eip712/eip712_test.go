package eip712

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/types"
)

func testAuth() *types.MintAuthorization {
	return &types.MintAuthorization{
		Target:    common.HexToAddress("0x00000000000000000000000000000000000000b1"),
		TokenID:   big.NewInt(1),
		Amount:    big.NewInt(10),
		URI:       "ipfs://item/1",
		MintPrice: big.NewInt(1000),
		Nonce:     big.NewInt(7),
		Deadline:  big.NewInt(1700000000),
	}
}

func testDomain() Domain {
	return Domain{
		Name:              "ArtWhale Collection",
		Version:           "1",
		ChainID:           big.NewInt(31337),
		VerifyingContract: common.HexToAddress("0x00000000000000000000000000000000000000c1"),
	}
}

func TestSignRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	for _, std := range []types.Standard{types.SingleOwner, types.MultiBalance} {
		sig, err := SignMint(testDomain(), std, testAuth(), key)
		require.NoError(t, err)
		require.Len(t, sig, SignatureLen)
		require.True(t, sig[64] == 27 || sig[64] == 28)

		got, err := RecoverMint(testDomain(), std, testAuth(), sig)
		require.NoError(t, err)
		require.Equal(t, signer, got)
	}
}

func TestDomainBinding(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	sig, err := SignMint(testDomain(), types.SingleOwner, testAuth(), key)
	require.NoError(t, err)

	other := testDomain()
	other.VerifyingContract = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	got, err := RecoverMint(other, types.SingleOwner, testAuth(), sig)
	if err == nil {
		require.NotEqual(t, signer, got)
	}

	other = testDomain()
	other.Version = "2"
	got, err = RecoverMint(other, types.SingleOwner, testAuth(), sig)
	if err == nil {
		require.NotEqual(t, signer, got)
	}

	tampered := testAuth()
	tampered.MintPrice = big.NewInt(1)
	got, err = RecoverMint(testDomain(), types.SingleOwner, tampered, sig)
	if err == nil {
		require.NotEqual(t, signer, got)
	}

	// the multi-balance struct ignores uri, the single-owner one amount
	tampered = testAuth()
	tampered.Amount = big.NewInt(99)
	got, err = RecoverMint(testDomain(), types.SingleOwner, tampered, sig)
	require.NoError(t, err)
	require.Equal(t, signer, got)
}

func TestRecoverBadSignature(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("x"))
	_, err := Recover(digest, make([]byte, 64))
	require.ErrorIs(t, err, ErrSignatureLen)

	_, err = Recover(digest, make([]byte, 65))
	require.Error(t, err)

	_, err = MintHash(types.StandardNone, testAuth())
	require.ErrorIs(t, err, types.ErrWrongStandard)
}

func TestMatchesTypedData(t *testing.T) {
	for _, std := range []types.Standard{types.SingleOwner, types.MultiBalance} {
		td, err := TypedData(testDomain(), std, testAuth())
		require.NoError(t, err)

		sep, err := td.HashStruct("EIP712Domain", td.Domain.Map())
		require.NoError(t, err)
		require.Equal(t, testDomain().Separator().Bytes(), []byte(sep))

		sh, err := td.HashStruct("Mint", td.Message)
		require.NoError(t, err)
		h, err := MintHash(std, testAuth())
		require.NoError(t, err)
		require.Equal(t, h.Bytes(), []byte(sh))
	}
}

func TestWordsStayInRange(t *testing.T) {
	span := new(big.Int).Lsh(big.NewInt(1), 256)

	a := testAuth()
	a.Nonce = new(big.Int).Add(a.Nonce, span)
	_, err := MintHash(types.SingleOwner, a)
	require.ErrorIs(t, err, types.ErrOutOfRange)
	_, err = MintDigest(testDomain(), types.SingleOwner, a)
	require.ErrorIs(t, err, types.ErrOutOfRange)
	_, err = TypedData(testDomain(), types.SingleOwner, a)
	require.ErrorIs(t, err, types.ErrOutOfRange)

	a = testAuth()
	a.Deadline = big.NewInt(-1)
	_, err = MintHash(types.MultiBalance, a)
	require.ErrorIs(t, err, types.ErrOutOfRange)
}
