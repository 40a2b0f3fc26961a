package royalty

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

var (
	owner = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	col   = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	r1    = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	r2    = common.HexToAddress("0x00000000000000000000000000000000000000e2")
)

type ownerGate common.Address

func (g ownerGate) IsCollectionAdmin(s store.Store, collection, caller common.Address) (bool, error) {
	if collection != col {
		return false, types.ErrCollectionNotExist
	}
	return caller == common.Address(g), nil
}

func newLedger(t *testing.T) (*Ledger, store.KVStore) {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return New(ownerGate(owner)), d
}

func TestCalculateRoyalty(t *testing.T) {
	l, d := newLedger(t)
	item := big.NewInt(1)

	split, err := l.CalculateRoyalty(d, col, item, big.NewInt(100))
	require.NoError(t, err)
	require.Empty(t, split.Receivers)
	require.Zero(t, split.Total.Sign())

	require.NoError(t, l.SetDefaultRoyalty(d, owner, col, types.RoyaltySet{{Receiver: r1, Fraction: 1000}, {Receiver: r2, Fraction: 250}}))

	split, err = l.CalculateRoyalty(d, col, item, big.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, []common.Address{r1, r2}, split.Receivers)
	require.Equal(t, int64(100), split.Amounts[0].Int64())
	require.Equal(t, int64(25), split.Amounts[1].Int64())
	require.Equal(t, int64(125), split.Total.Int64())

	// floor rounding
	split, err = l.CalculateRoyalty(d, col, item, big.NewInt(99))
	require.NoError(t, err)
	require.Equal(t, int64(9), split.Amounts[0].Int64())
	require.Equal(t, int64(2), split.Amounts[1].Int64())
}

func TestLinearity(t *testing.T) {
	l, d := newLedger(t)
	item := big.NewInt(5)
	require.NoError(t, l.SetTokenRoyalty(d, owner, col, item, types.RoyaltySet{{Receiver: r1, Fraction: 300}, {Receiver: r2, Fraction: 1700}}))

	for _, p := range []int64{10000, 123400, 5000000} {
		one, err := l.CalculateRoyalty(d, col, item, big.NewInt(p))
		require.NoError(t, err)
		two, err := l.CalculateRoyalty(d, col, item, big.NewInt(2*p))
		require.NoError(t, err)

		for i := range one.Amounts {
			require.Equal(t, new(big.Int).Mul(one.Amounts[i], big.NewInt(2)), two.Amounts[i])
		}
		require.Equal(t, new(big.Int).Mul(one.Total, big.NewInt(2)), two.Total)
		require.True(t, one.Total.Cmp(big.NewInt(p)) < 0)
	}
}

func TestEmptyOverride(t *testing.T) {
	l, d := newLedger(t)
	item := big.NewInt(9)

	require.NoError(t, l.SetDefaultRoyalty(d, owner, col, types.RoyaltySet{{Receiver: r1, Fraction: 1000}}))
	require.NoError(t, l.SetTokenRoyalty(d, owner, col, item, types.RoyaltySet{}))

	split, err := l.CalculateRoyalty(d, col, item, big.NewInt(100))
	require.NoError(t, err)
	require.Empty(t, split.Receivers)
	require.Empty(t, split.Amounts)
	require.Zero(t, split.Total.Sign())

	rs, ok, err := l.TokenRoyaltyInfo(d, col, item)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, rs)

	// other items keep the default
	split, err = l.CalculateRoyalty(d, col, big.NewInt(10), big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, int64(10), split.Total.Int64())

	require.NoError(t, l.ResetTokenRoyalty(d, owner, col, item))
	split, err = l.CalculateRoyalty(d, col, item, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, int64(10), split.Total.Int64())

	require.NoError(t, l.SetDefaultRoyalty(d, owner, col, nil))
	rs, err = l.DefaultRoyaltyInfo(d, col)
	require.NoError(t, err)
	require.Empty(t, rs)
}

func TestRejectedSets(t *testing.T) {
	l, d := newLedger(t)
	prev := types.RoyaltySet{{Receiver: r1, Fraction: 500}}
	require.NoError(t, l.SetDefaultRoyalty(d, owner, col, prev))

	cases := []struct {
		name string
		rs   types.RoyaltySet
		err  error
	}{
		{"full sum", types.RoyaltySet{{Receiver: r1, Fraction: 5000}, {Receiver: r2, Fraction: 5000}}, types.ErrWrongSum},
		{"null receiver", types.RoyaltySet{{Fraction: 10}}, types.ErrWrongReceiver},
		{"whole fraction", types.RoyaltySet{{Receiver: r1, Fraction: 10000}}, types.ErrWrongFraction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.ErrorIs(t, l.SetDefaultRoyalty(d, owner, col, c.rs), c.err)
			require.ErrorIs(t, l.SetTokenRoyalty(d, owner, col, big.NewInt(1), c.rs), c.err)

			rs, err := l.DefaultRoyaltyInfo(d, col)
			require.NoError(t, err)
			require.Equal(t, prev, rs)

			_, ok, err := l.TokenRoyaltyInfo(d, col, big.NewInt(1))
			require.NoError(t, err)
			require.False(t, ok)
		})
	}

	require.ErrorIs(t, l.SetDefaultRoyalty(d, r1, col, prev), types.ErrNotOwner)
	require.ErrorIs(t, l.ResetTokenRoyalty(d, r1, col, big.NewInt(1)), types.ErrNotOwner)
	require.ErrorIs(t, l.SetDefaultRoyalty(d, owner, r2, prev), types.ErrCollectionNotExist)
}
