package repo

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/backend/kv"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/wallet"
)

// MemRepo keeps the state in memory; only the keystore lives on disk.
type MemRepo struct {
	// lk guards the config
	lk  sync.RWMutex
	cfg *config.Config

	w    *wallet.Wallet
	meta *kv.BadgerStore

	secret     []byte
	apiAddress string
	token      []byte
}

var _ Repo = (*MemRepo)(nil)

// NewInMemoryRepo makes a repo whose keystore is in keyDir.
func NewInMemoryRepo(cfg *config.Config, keyDir string) (*MemRepo, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	w, err := wallet.New(keyDir)
	if err != nil {
		return nil, err
	}

	ds, err := kv.NewBadgerStore("", kv.MemoryOptions())
	if err != nil {
		return nil, err
	}

	return &MemRepo{
		cfg:    cfg,
		w:      w,
		meta:   ds,
		secret: []byte("in memory api secret"),
	}, nil
}

func (mr *MemRepo) Config() *config.Config {
	mr.lk.RLock()
	defer mr.lk.RUnlock()

	return mr.cfg
}

func (mr *MemRepo) ReplaceConfig(cfg *config.Config) error {
	mr.lk.Lock()
	defer mr.lk.Unlock()

	mr.cfg = cfg
	return nil
}

func (mr *MemRepo) MetaStore() store.KVStore {
	return mr.meta
}

func (mr *MemRepo) Wallet() *wallet.Wallet {
	return mr.w
}

func (mr *MemRepo) SetAPIAddr(addr string) error {
	mr.apiAddress = addr
	return nil
}

func (mr *MemRepo) APIAddr() (string, error) {
	if mr.apiAddress == "" {
		return "", xerrors.New("api is not running")
	}
	return mr.apiAddress, nil
}

func (mr *MemRepo) SetAPIToken(token []byte) error {
	mr.token = token
	return nil
}

func (mr *MemRepo) APIToken() ([]byte, error) {
	if len(mr.token) == 0 {
		return nil, xerrors.New("no api token")
	}
	return mr.token, nil
}

func (mr *MemRepo) APISecret() ([]byte, error) {
	return mr.secret, nil
}

func (mr *MemRepo) Version() uint {
	return LatestVersion
}

func (mr *MemRepo) Path() (string, error) {
	return "<in-memory>", nil
}

func (mr *MemRepo) Close() error {
	return mr.meta.Close()
}

func (mr *MemRepo) Repo() Repo {
	return mr
}
