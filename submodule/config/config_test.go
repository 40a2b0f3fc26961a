package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/repo"
)

func TestConfigModule(t *testing.T) {
	r, err := repo.NewInMemoryRepo(nil, t.TempDir())
	require.NoError(t, err)
	defer r.Close()

	cm := NewConfigModule(r)
	ctx := context.TODO()

	require.NoError(t, cm.ConfigSet(ctx, "market.tradeFeePercent", "3"))
	v, err := cm.ConfigGet(ctx, "market.tradeFeePercent")
	require.NoError(t, err)
	require.Equal(t, uint64(3), v)

	require.Error(t, cm.ConfigSet(ctx, "market.tradeFeePercent", "100"))
	require.Error(t, cm.ConfigSet(ctx, "market.owner", "not-an-address"))
	require.Equal(t, uint64(3), r.Config().Market.TradeFeePercent)

	_, err = cm.ConfigGet(ctx, "market.nothing")
	require.Error(t, err)
}
