package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepoPathGet(t *testing.T) {
	t.Run("get default repo path", func(t *testing.T) {
		t.Setenv(RepoPathVar, "")
		p, err := GetRepoPath("")
		require.NoError(t, err)
		require.Equal(t, ".artwhale", filepath.Base(p))
	})

	t.Run("env overrides default", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(RepoPathVar, dir)
		p, err := GetRepoPath("")
		require.NoError(t, err)
		require.Equal(t, dir, p)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv(RepoPathVar, t.TempDir())
		p, err := GetRepoPath("/tmp/art")
		require.NoError(t, err)
		require.Equal(t, "/tmp/art", p)
	})
}
