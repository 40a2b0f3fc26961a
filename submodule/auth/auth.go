package auth

import (
	"context"

	"github.com/filecoin-project/go-jsonrpc/auth"
	"github.com/gbrlsnchs/jwt/v3"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	logging "github.com/artwhale/go-artwhale/lib/log"
)

var logger = logging.Logger("auth")

var _ api.IAuth = (*JwtAuth)(nil)

type jwtPayload struct {
	Allow []auth.Permission
}

// JwtAuth issues and checks HS256 api tokens.
type JwtAuth struct {
	apiSecret *jwt.HMACSHA
}

func NewJwtAuth(secret []byte) (*JwtAuth, error) {
	if len(secret) == 0 {
		return nil, xerrors.New("empty api secret")
	}
	return &JwtAuth{apiSecret: jwt.NewHS256(secret)}, nil
}

func (a *JwtAuth) AuthVerify(ctx context.Context, token string) ([]auth.Permission, error) {
	var payload jwtPayload
	if _, err := jwt.Verify([]byte(token), a.apiSecret, &payload); err != nil {
		logger.Debugw("token rejected", "err", err)
		return nil, xerrors.Errorf("JWT Verification failed: %w", err)
	}

	return payload.Allow, nil
}

func (a *JwtAuth) AuthNew(ctx context.Context, perms []auth.Permission) ([]byte, error) {
	for _, p := range perms {
		if !known(p) {
			return nil, xerrors.Errorf("unknown permission %q", p)
		}
	}

	p := jwtPayload{
		Allow: perms,
	}

	return jwt.Sign(&p, a.apiSecret)
}

func known(p auth.Permission) bool {
	for _, ap := range api.AllPermissions {
		if ap == p {
			return true
		}
	}
	return false
}
