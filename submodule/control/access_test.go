package control

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

type fakeCollections map[common.Address]*types.Collection

func (f fakeCollections) Collection(s store.Store, addr common.Address) (*types.Collection, error) {
	col, ok := f[addr]
	if !ok {
		return nil, types.ErrCollectionNotExist
	}
	return col, nil
}

func TestMarketGate(t *testing.T) {
	d, err := kv.NewBadgerStore("", kv.MemoryOptions())
	require.NoError(t, err)
	defer d.Close()

	owner := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	other := common.HexToAddress("0x00000000000000000000000000000000000000b1")

	g := NewMarketGate()
	_, err = g.IsAdmin(d, owner)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.Error(t, g.Init(d, common.Address{}))
	require.NoError(t, g.Init(d, owner))
	require.Error(t, g.Init(d, other))

	require.NoError(t, Check(g.IsAdmin(d, owner)))
	require.ErrorIs(t, Check(g.IsAdmin(d, other)), types.ErrNotOwner)
}

func TestCollectionGate(t *testing.T) {
	col := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	owner := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	g := NewCollectionGate(fakeCollections{col: {Address: col, Owner: owner}})

	require.NoError(t, Check(g.IsCollectionAdmin(nil, col, owner)))
	require.ErrorIs(t, Check(g.IsCollectionAdmin(nil, col, common.Address{})), types.ErrNotOwner)
	require.ErrorIs(t, Check(g.IsCollectionAdmin(nil, common.Address{}, owner)), types.ErrCollectionNotExist)
}
