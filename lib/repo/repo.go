package repo

import (
	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/wallet"
)

const LatestVersion uint = 1

// Repo is all persistent data of a node.
type Repo interface {
	Config() *config.Config

	// ReplaceConfig replaces the current config, with the newly passed in one.
	ReplaceConfig(cfg *config.Config) error

	// MetaStore holds the marketplace state and message history.
	MetaStore() store.KVStore

	Wallet() *wallet.Wallet

	// SetAPIAddr sets the address of the running jsonrpc API.
	SetAPIAddr(maddr string) error

	// APIAddr returns the address of the running API.
	APIAddr() (string, error)

	SetAPIToken(token []byte) error
	APIToken() ([]byte, error)

	// APISecret is the key api tokens are signed with; created on first use.
	APISecret() ([]byte, error)

	// Version returns the current repo version.
	Version() uint

	// Path returns the repo path.
	Path() (string, error)

	// Close shuts down the repo.
	Close() error

	Repo() Repo
}
