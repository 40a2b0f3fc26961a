package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

var (
	admin = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	other = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	tokA  = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	tokB  = common.HexToAddress("0x00000000000000000000000000000000000000e2")
	tokC  = common.HexToAddress("0x00000000000000000000000000000000000000e3")
)

type adminGate common.Address

func (g adminGate) IsAdmin(s store.Store, caller common.Address) (bool, error) {
	return caller == common.Address(g), nil
}

func newRegistry(t *testing.T) (*Registry, store.KVStore) {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return New(adminGate(admin)), d
}

func TestSettlementTokens(t *testing.T) {
	r, d := newRegistry(t)

	list, err := r.SettlementTokens(d)
	require.NoError(t, err)
	require.Equal(t, []common.Address{build.NativeCurrency}, list)

	// added out of address order
	for _, c := range []common.Address{tokC, tokA, tokB, tokA} {
		require.NoError(t, r.AddSettlementToken(d, admin, c))
	}

	list, err = r.SettlementTokens(d)
	require.NoError(t, err)
	require.Equal(t, []common.Address{build.NativeCurrency, tokC, tokA, tokB}, list)

	require.NoError(t, r.RemoveSettlementToken(d, admin, tokA))
	require.NoError(t, r.RemoveSettlementToken(d, admin, tokA))
	require.NoError(t, r.RemoveSettlementToken(d, admin, build.NativeCurrency))

	ok, err := r.IsSettlementToken(d, tokA)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.IsSettlementToken(d, build.NativeCurrency)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, r.AddSettlementToken(d, admin, tokA))
	list, err = r.SettlementTokens(d)
	require.NoError(t, err)
	require.Equal(t, []common.Address{build.NativeCurrency, tokC, tokB, tokA}, list)

	require.ErrorIs(t, r.AddSettlementToken(d, other, tokA), types.ErrNotOwner)
	require.ErrorIs(t, r.RemoveSettlementToken(d, other, tokA), types.ErrNotOwner)
}

func TestWhitelist(t *testing.T) {
	r, d := newRegistry(t)

	require.NoError(t, r.AddWhitelist(d, admin, types.SingleOwner, tokB))
	require.NoError(t, r.AddWhitelist(d, admin, types.SingleOwner, tokA))
	require.NoError(t, r.AddWhitelist(d, admin, types.MultiBalance, tokC))

	ok, err := r.IsWhitelisted(d, types.SingleOwner, tokA)
	require.NoError(t, err)
	require.True(t, ok)

	// per standard
	ok, err = r.IsWhitelisted(d, types.MultiBalance, tokA)
	require.NoError(t, err)
	require.False(t, ok)

	list, err := r.Whitelist(d, types.SingleOwner)
	require.NoError(t, err)
	require.Equal(t, []common.Address{tokA, tokB}, list)

	require.NoError(t, r.RemoveWhitelist(d, admin, types.SingleOwner, tokA))
	list, err = r.Whitelist(d, types.SingleOwner)
	require.NoError(t, err)
	require.Equal(t, []common.Address{tokB}, list)

	require.ErrorIs(t, r.AddWhitelist(d, admin, types.StandardNone, tokA), types.ErrWrongStandard)
	require.ErrorIs(t, r.AddWhitelist(d, admin, types.SingleOwner, common.Address{}), types.ErrZeroContract)
	require.ErrorIs(t, r.AddWhitelist(d, other, types.SingleOwner, tokA), types.ErrNotOwner)
	_, err = r.Whitelist(d, types.StandardNone)
	require.ErrorIs(t, err, types.ErrWrongStandard)
}

func TestTradeFee(t *testing.T) {
	r, d := newRegistry(t)

	fee, err := r.TradeFeePercent(d)
	require.NoError(t, err)
	require.Zero(t, fee)

	require.NoError(t, r.SetTradeFeePercent(d, admin, 2))
	require.NoError(t, r.SetTradeFeePercent(d, admin, 99))
	require.ErrorIs(t, r.SetTradeFeePercent(d, admin, 100), types.ErrWrongPercent)
	require.ErrorIs(t, r.SetTradeFeePercent(d, other, 5), types.ErrNotOwner)

	fee, err = r.TradeFeePercent(d)
	require.NoError(t, err)
	require.Equal(t, uint64(99), fee)
}
