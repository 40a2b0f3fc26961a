package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/tx"
)

var logger = logging.Logger("wallet")

// Wallet keeps encrypted keys in dir, one file per address, named by the
// lowercase hex address. Unlocked keys stay in memory.
type Wallet struct {
	lk sync.Mutex

	dir     string
	scryptN int
	scryptP int

	accounts map[common.Address]*ecdsa.PrivateKey
}

func New(dir string) (*Wallet, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Wallet{
		dir:      dir,
		scryptN:  StandardScryptN,
		scryptP:  StandardScryptP,
		accounts: make(map[common.Address]*ecdsa.PrivateKey),
	}, nil
}

// SetScrypt changes the cost of newly stored keys.
func (w *Wallet) SetScrypt(n, p int) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.scryptN, w.scryptP = n, p
}

func (w *Wallet) path(addr common.Address) string {
	return filepath.Join(w.dir, hex.EncodeToString(addr.Bytes()))
}

// Generate creates, stores and unlocks a fresh key.
func (w *Wallet) Generate(password string) (common.Address, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, err
	}
	return w.Import(priv, password)
}

// Import stores priv encrypted by password; an existing file is kept.
func (w *Wallet) Import(priv *ecdsa.PrivateKey, password string) (common.Address, error) {
	key, err := newKey(priv)
	if err != nil {
		return common.Address{}, err
	}

	w.lk.Lock()
	defer w.lk.Unlock()

	p := w.path(key.Address)
	if _, err := os.Stat(p); err == nil {
		w.accounts[key.Address] = priv
		return key.Address, nil
	}

	keyjson, err := encryptKey(key, password, w.scryptN, w.scryptP)
	if err != nil {
		return common.Address{}, err
	}
	if err := writeKeyFile(p, keyjson); err != nil {
		return common.Address{}, err
	}

	w.accounts[key.Address] = priv

	logger.Infow("key stored", "address", key.Address)

	return key.Address, nil
}

// List returns stored addresses in ascending order.
func (w *Wallet) List() ([]common.Address, error) {
	files, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, err
	}

	res := make([]common.Address, 0, len(files))
	for _, fi := range files {
		if fi.IsDir() {
			continue
		}
		b, err := hex.DecodeString(fi.Name())
		if err != nil || len(b) != common.AddressLength {
			continue
		}
		res = append(res, common.BytesToAddress(b))
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Hex() < res[j].Hex()
	})
	return res, nil
}

func (w *Wallet) Has(addr common.Address) bool {
	_, err := os.Stat(w.path(addr))
	return err == nil
}

// Unlock decrypts the key of addr and keeps it for signing.
func (w *Wallet) Unlock(addr common.Address, password string) error {
	w.lk.Lock()
	defer w.lk.Unlock()

	if _, ok := w.accounts[addr]; ok {
		return nil
	}

	keyjson, err := os.ReadFile(w.path(addr))
	if err != nil {
		if os.IsNotExist(err) {
			return xerrors.Errorf("%s: %w", addr, ErrNoKey)
		}
		return err
	}

	key, err := decryptKey(keyjson, password)
	if err != nil {
		return err
	}
	if key.Address != addr {
		return xerrors.Errorf("key content mismatch: have %s, want %s", key.Address, addr)
	}

	w.accounts[addr] = key.PrivateKey
	return nil
}

// Lock drops the decrypted key of addr.
func (w *Wallet) Lock(addr common.Address) {
	w.lk.Lock()
	defer w.lk.Unlock()
	delete(w.accounts, addr)
}

func (w *Wallet) key(addr common.Address) (*ecdsa.PrivateKey, error) {
	w.lk.Lock()
	defer w.lk.Unlock()

	priv, ok := w.accounts[addr]
	if !ok {
		return nil, xerrors.Errorf("%s is locked", addr)
	}
	return priv, nil
}

// SignMessage signs m with the key of m.From.
func (w *Wallet) SignMessage(m *tx.Message) (*tx.SignedMessage, error) {
	priv, err := w.key(m.From)
	if err != nil {
		return nil, err
	}
	return tx.Sign(m, priv)
}

// SignDigest signs a typed data digest, e.g. a mint authorization.
func (w *Wallet) SignDigest(addr common.Address, digest common.Hash) ([]byte, error) {
	priv, err := w.key(addr)
	if err != nil {
		return nil, err
	}
	return eip712.Sign(digest, priv)
}
