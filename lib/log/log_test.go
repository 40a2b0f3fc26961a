package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileOutput(t *testing.T) {
	p := filepath.Join(t.TempDir(), "artwhale.log")
	SetOutput(p, 1, 1, 1)
	defer SetOutput("", 0, 0, 0)

	Logger("test").Infow("order created", "id", 7)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Contains(t, string(data), "order created")
	require.Contains(t, string(data), `"logger":"test"`)
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("debug"))
	require.True(t, Logger("test").Desugar().Core().Enabled(-1))
	require.NoError(t, SetLevel("info"))
	require.Error(t, SetLevel("loud"))
}
