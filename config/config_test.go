package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, cfg.WriteFile(p))

	require.NoError(t, cfg.Set("market.tradeFeePercent", "2"))
	require.NoError(t, cfg.Set("market.owner", "0x00000000000000000000000000000000000000aa"))
	require.NoError(t, cfg.WriteFile(p))

	ncfg, err := ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, uint64(2), ncfg.Market.TradeFeePercent)
	require.Equal(t, "0x00000000000000000000000000000000000000aa", ncfg.Market.Owner)

	v, err := ncfg.Get("market.chainID")
	require.NoError(t, err)
	require.Equal(t, int64(1), v)
}

func TestConfigValidate(t *testing.T) {
	cfg := NewDefaultConfig()

	require.Error(t, cfg.Set("market.tradeFeePercent", "100"))
	require.Error(t, cfg.Set("market.owner", "not-an-address"))
	require.Error(t, cfg.Set("log.level", "verbose"))
	require.NoError(t, cfg.Set("log.level", "debug"))
	require.Equal(t, "debug", cfg.Log.Level)

	_, err := cfg.Get("market.unknown")
	require.Error(t, err)
}
