package node

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/artwhale/go-artwhale/lib/repo"
	"github.com/artwhale/go-artwhale/submodule/auth"
	mconfig "github.com/artwhale/go-artwhale/submodule/config"
	"github.com/artwhale/go-artwhale/submodule/state"
)

// Builder is a helper to aid in the construction of a node.
type Builder struct {
	repo    repo.Repo
	genesis *state.Genesis
	clock   func() time.Time
}

// BuilderOpt is an option for building a node.
type BuilderOpt func(*Builder) error

// SetRepo sets the repo the node runs on.
func SetRepo(r repo.Repo) BuilderOpt {
	return func(b *Builder) error {
		b.repo = r
		return nil
	}
}

// SetGenesis seeds an empty state; ignored once the state exists.
func SetGenesis(g *state.Genesis) BuilderOpt {
	return func(b *Builder) error {
		b.genesis = g
		return nil
	}
}

// SetClock replaces the time source of mint deadlines.
func SetClock(now func() time.Time) BuilderOpt {
	return func(b *Builder) error {
		b.clock = now
		return nil
	}
}

// New creates a new node.
func New(ctx context.Context, opts ...BuilderOpt) (*BaseNode, error) {
	builder := &Builder{}

	for _, o := range opts {
		if err := o(builder); err != nil {
			return nil, err
		}
	}

	return builder.build(ctx)
}

func (b *Builder) build(ctx context.Context) (*BaseNode, error) {
	if b.repo == nil {
		return nil, errors.New("no repo")
	}

	sm, err := state.NewStateMgr(b.repo.MetaStore(), b.genesis)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load state")
	}
	if b.clock != nil {
		sm.SetClock(b.clock)
	}

	secret, err := b.repo.APISecret()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load api secret")
	}
	jauth, err := auth.NewJwtAuth(secret)
	if err != nil {
		return nil, err
	}

	nd := &BaseNode{
		StateMgr:     sm,
		JwtAuth:      jauth,
		ConfigModule: mconfig.NewConfigModule(b.repo),
		ctx:          ctx,
		repo:         b.repo,
		shutdownChan: make(chan struct{}),
	}

	return nd, nil
}
