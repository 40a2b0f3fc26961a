package auth

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-jsonrpc/auth"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/api"
)

func TestJwtAuth(t *testing.T) {
	ctx := context.TODO()

	_, err := NewJwtAuth(nil)
	require.Error(t, err)

	a, err := NewJwtAuth([]byte("secret"))
	require.NoError(t, err)

	tok, err := a.AuthNew(ctx, []auth.Permission{api.PermRead, api.PermWrite})
	require.NoError(t, err)

	perms, err := a.AuthVerify(ctx, string(tok))
	require.NoError(t, err)
	require.Equal(t, []auth.Permission{api.PermRead, api.PermWrite}, perms)

	_, err = a.AuthNew(ctx, []auth.Permission{"root"})
	require.Error(t, err)

	// another secret rejects the token
	b, err := NewJwtAuth([]byte("other"))
	require.NoError(t, err)
	_, err = b.AuthVerify(ctx, string(tok))
	require.Error(t, err)

	_, err = a.AuthVerify(ctx, "garbage")
	require.Error(t, err)
}
