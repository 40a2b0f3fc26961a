package config

import (
	"context"
	"sync"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/lib/repo"
)

var _ api.IConfig = (*ConfigModule)(nil)

// ConfigModule reads and edits the config file of a repo.
type ConfigModule struct { //nolint
	repo repo.Repo
	lock sync.Mutex
}

func NewConfigModule(repo repo.Repo) *ConfigModule {
	return &ConfigModule{repo: repo}
}

// ConfigSet sets a value and persists the config. Market genesis values
// only take effect on an empty state.
func (s *ConfigModule) ConfigSet(ctx context.Context, dottedKey string, jsonString string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	cfg := *s.repo.Config()
	if err := cfg.Set(dottedKey, jsonString); err != nil {
		return err
	}

	return s.repo.ReplaceConfig(&cfg)
}

func (s *ConfigModule) ConfigGet(ctx context.Context, dottedKey string) (interface{}, error) {
	return s.repo.Config().Get(dottedKey)
}
