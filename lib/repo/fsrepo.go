package repo

import (
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	lockfile "github.com/ipfs/go-fs-lock"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/backend/kv"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/wallet"
)

const (
	apiFile            = "api"
	tokenFile          = "token"
	secretFile         = "secret"
	configFilename     = "config.json"
	tempConfigFilename = ".config.json.temp"
	lockFile           = "repo.lock"
	versionFilename    = "version"

	keyStorePathPrefix = "keystore" // $ArtPath/keystore
	metaPathPrefix     = "meta"     // $ArtPath/meta
)

var logger = logging.Logger("repo")

// FSRepo is a repo implementation backed by a filesystem.
type FSRepo struct {
	// Path to the repo root directory.
	path    string
	version uint

	// lk protects the config file
	lk  sync.RWMutex
	cfg *config.Config

	wallet *wallet.Wallet
	metaDs *kv.BadgerStore

	// lockfile is the file system lock to prevent others from opening the same repo.
	lockfile io.Closer
}

var _ Repo = (*FSRepo)(nil)

// NewFSRepo opens the repo at dir, initializing it with cfg when dir has no
// config yet.
func NewFSRepo(dir string, cfg *config.Config) (*FSRepo, error) {
	repoPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}

	if repoPath == "" { // path contained no separator
		repoPath = "./"
	}

	if err := ensureWritableDirectory(repoPath); err != nil {
		return nil, xerrors.Errorf("no writable directory %w", err)
	}

	hasConfig, err := fileExists(filepath.Join(repoPath, configFilename))
	if err != nil {
		return nil, xerrors.Errorf("failed to check for repo config %w", err)
	}

	if !hasConfig {
		if cfg == nil {
			return nil, xerrors.Errorf("no repo found at %s; run: 'init [--repo=%s]'", repoPath, repoPath)
		}
		logger.Info("initializing repo at: ", repoPath)
		if err = initFSRepo(repoPath, cfg); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(repoPath)
	if err != nil {
		return nil, xerrors.Errorf("failed to stat repo %s %w", repoPath, err)
	}

	// Resolve path if it's a symlink.
	actualPath := repoPath
	if !info.IsDir() {
		actualPath, err = os.Readlink(repoPath)
		if err != nil {
			return nil, xerrors.Errorf("failed to follow repo symlink %s %w", repoPath, err)
		}
	}

	r := &FSRepo{path: actualPath}

	r.lockfile, err = lockfile.Lock(r.path, lockFile)
	if err != nil {
		return nil, xerrors.Errorf("failed to take repo lock %w", err)
	}

	if err := r.loadFromDisk(); err != nil {
		_ = r.lockfile.Close()
		return nil, err
	}

	logger.Info("open repo at: ", repoPath)

	return r, nil
}

// Exists reports whether dir holds an initialized repo.
func Exists(dir string) (bool, error) {
	repoPath, err := homedir.Expand(dir)
	if err != nil {
		return false, err
	}
	return fileExists(filepath.Join(repoPath, configFilename))
}

func initFSRepo(dir string, cfg *config.Config) error {
	configFile := filepath.Join(dir, configFilename)
	if err := cfg.WriteFile(configFile); err != nil {
		return xerrors.Errorf("initializing config file failed %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, versionFilename), []byte(strconv.FormatUint(uint64(LatestVersion), 10)), 0644); err != nil {
		return xerrors.Errorf("initializing version file failed %w", err)
	}

	kstorePath := filepath.Join(dir, keyStorePathPrefix)
	if err := os.MkdirAll(kstorePath, 0700); err != nil {
		return xerrors.Errorf("initializing keystore directory failed %w", err)
	}

	return nil
}

func (r *FSRepo) loadFromDisk() error {
	if err := r.loadVersion(); err != nil {
		return xerrors.Errorf("failed to load version file %w", err)
	}

	if err := r.loadConfig(); err != nil {
		return xerrors.Errorf("failed to load config file %w", err)
	}

	w, err := wallet.New(filepath.Join(r.path, keyStorePathPrefix))
	if err != nil {
		return xerrors.Errorf("failed to open keystore %w", err)
	}
	r.wallet = w

	if err := r.openMetaStore(); err != nil {
		return xerrors.Errorf("failed to open meta store %w", err)
	}

	return nil
}

func (r *FSRepo) loadVersion() error {
	b, err := os.ReadFile(filepath.Join(r.path, versionFilename))
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 32)
	if err != nil {
		return err
	}
	if uint(v) != LatestVersion {
		return xerrors.Errorf("repo version %d, expected %d", v, LatestVersion)
	}
	r.version = uint(v)
	return nil
}

func (r *FSRepo) loadConfig() error {
	configFile := filepath.Join(r.path, configFilename)

	cfg, err := config.ReadFile(configFile)
	if err != nil {
		return xerrors.Errorf("failed to read config file at %q %w", configFile, err)
	}

	r.cfg = cfg
	return nil
}

func (r *FSRepo) openMetaStore() error {
	ds, err := kv.NewBadgerStore(filepath.Join(r.path, metaPathPrefix), &kv.DefaultOptions)
	if err != nil {
		return err
	}

	r.metaDs = ds
	return nil
}

func (r *FSRepo) Config() *config.Config {
	r.lk.RLock()
	defer r.lk.RUnlock()

	return r.cfg
}

// ReplaceConfig replaces the current config with the newly passed in one.
func (r *FSRepo) ReplaceConfig(cfg *config.Config) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	tmp := filepath.Join(r.path, tempConfigFilename)
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := cfg.WriteFile(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(r.path, configFilename)); err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

func (r *FSRepo) MetaStore() store.KVStore {
	return r.metaDs
}

func (r *FSRepo) Wallet() *wallet.Wallet {
	return r.wallet
}

// SetAPIAddr writes the multiaddr of the running api into the api file.
func (r *FSRepo) SetAPIAddr(maddr string) error {
	f, err := os.Create(filepath.Join(r.path, apiFile))
	if err != nil {
		return xerrors.Errorf("could not create API file %w", err)
	}

	defer f.Close() // nolint: errcheck

	_, err = f.WriteString(maddr)
	if err != nil {
		if err := r.removeFile(apiFile); err != nil {
			return xerrors.Errorf("failed to remove API file %w", err)
		}

		return xerrors.Errorf("failed to write to API file %w", err)
	}

	return nil
}

// APIAddr reads the api file; it only exists while a daemon runs.
func (r *FSRepo) APIAddr() (string, error) {
	b, err := os.ReadFile(filepath.Join(r.path, apiFile))
	if err != nil {
		return "", xerrors.Errorf("failed to read API file %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (r *FSRepo) SetAPIToken(token []byte) error {
	return os.WriteFile(filepath.Join(r.path, tokenFile), token, 0600)
}

func (r *FSRepo) APIToken() ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(r.path, tokenFile))
	if err != nil {
		return nil, xerrors.Errorf("failed to read token file %w", err)
	}
	return []byte(strings.TrimSpace(string(b))), nil
}

func (r *FSRepo) APISecret() ([]byte, error) {
	p := filepath.Join(r.path, secretFile)
	b, err := os.ReadFile(p)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	b = make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, b, 0600); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *FSRepo) Version() uint {
	return r.version
}

// Path returns the path the fsrepo is at
func (r *FSRepo) Path() (string, error) {
	return r.path, nil
}

func (r *FSRepo) Repo() Repo {
	return r
}

// Close closes the stores, removes the api and token files and releases the lock.
func (r *FSRepo) Close() error {
	if err := r.metaDs.Close(); err != nil {
		return xerrors.Errorf("failed to close meta datastore %w", err)
	}

	if err := r.removeFile(apiFile); err != nil {
		return xerrors.Errorf("failed to remove API file %w", err)
	}

	if err := r.removeFile(tokenFile); err != nil {
		return xerrors.Errorf("failed to remove token file %w", err)
	}

	return r.lockfile.Close()
}

func (r *FSRepo) removeFile(name string) error {
	if err := os.Remove(filepath.Join(r.path, name)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func fileExists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ensureWritableDirectory creates dir if needed and checks it can be written.
func ensureWritableDirectory(path string) error {
	if err := os.MkdirAll(path, 0775); err != nil {
		return err
	}

	f, err := os.CreateTemp(path, ".check")
	if err != nil {
		return xerrors.Errorf("%s is not writable: %w", path, err)
	}
	f.Close()
	return os.Remove(f.Name())
}

// KeystorePath, ReadAPIInfo and ReadConfig read a repo without taking its
// lock, so clients work next to a running daemon.
func KeystorePath(dir string) (string, error) {
	repoPath, err := homedir.Expand(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(repoPath, keyStorePathPrefix), nil
}

// ReadAPIInfo returns the api multiaddr and token of a running daemon.
func ReadAPIInfo(dir string) (string, []byte, error) {
	repoPath, err := homedir.Expand(dir)
	if err != nil {
		return "", nil, err
	}

	b, err := os.ReadFile(filepath.Join(repoPath, apiFile))
	if err != nil {
		return "", nil, xerrors.Errorf("failed to read API file %w", err)
	}

	tok, err := os.ReadFile(filepath.Join(repoPath, tokenFile))
	if err != nil && !os.IsNotExist(err) {
		return "", nil, err
	}

	return strings.TrimSpace(string(b)), []byte(strings.TrimSpace(string(tok))), nil
}

func ReadConfig(dir string) (*config.Config, error) {
	repoPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	return config.ReadFile(filepath.Join(repoPath, configFilename))
}
