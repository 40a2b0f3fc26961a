package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

func TestFSRepo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repo")

	_, err := NewFSRepo(dir, nil)
	require.Error(t, err)

	cfg := config.NewDefaultConfig()
	cfg.Market.TradeFeePercent = 2
	r, err := NewFSRepo(dir, cfg)
	require.NoError(t, err)

	ok, err := Exists(dir)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, LatestVersion, r.Version())

	// one process at a time
	_, err = NewFSRepo(dir, nil)
	require.Error(t, err)

	require.NoError(t, r.MetaStore().Put([]byte("k"), []byte("v")))

	nc := config.NewDefaultConfig()
	nc.Market.TradeFeePercent = 5
	require.NoError(t, r.ReplaceConfig(nc))

	require.NoError(t, r.SetAPIAddr("/ip4/127.0.0.1/tcp/8071"))
	addr, err := r.APIAddr()
	require.NoError(t, err)
	require.Equal(t, "/ip4/127.0.0.1/tcp/8071", addr)

	require.NoError(t, r.SetAPIToken([]byte("tok")))
	tok, err := r.APIToken()
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), tok)

	sec, err := r.APISecret()
	require.NoError(t, err)
	require.Len(t, sec, 32)

	// readable while locked
	maddr, rtok, err := ReadAPIInfo(dir)
	require.NoError(t, err)
	require.Equal(t, addr, maddr)
	require.Equal(t, tok, rtok)
	rc, err := ReadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, uint64(5), rc.Market.TradeFeePercent)
	kp, err := KeystorePath(dir)
	require.NoError(t, err)
	require.DirExists(t, kp)

	require.NoError(t, r.Close())

	r, err = NewFSRepo(dir, nil)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, uint64(5), r.Config().Market.TradeFeePercent)

	v, err := r.MetaStore().Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)

	_, err = r.APIAddr()
	require.Error(t, err)

	sec2, err := r.APISecret()
	require.NoError(t, err)
	require.Equal(t, sec, sec2)
}

func TestMemRepo(t *testing.T) {
	r, err := NewInMemoryRepo(nil, t.TempDir())
	require.NoError(t, err)
	defer r.Close()

	_, err = r.MetaStore().Get([]byte("k"))
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = r.APIAddr()
	require.Error(t, err)
	require.NoError(t, r.SetAPIAddr("/ip4/127.0.0.1/tcp/1"))
	addr, err := r.APIAddr()
	require.NoError(t, err)
	require.Equal(t, "/ip4/127.0.0.1/tcp/1", addr)
}
