package kv

import (
	badger "github.com/dgraph-io/badger/v2"

	"github.com/artwhale/go-artwhale/lib/types/store"
)

var _ store.TxnStore = (*txnStore)(nil)

// txnStore sees its own writes; nothing is visible to others before Commit.
type txnStore struct {
	txn *badger.Txn
}

func (t *txnStore) Put(key, value []byte) error {
	return t.txn.Set(key, value)
}

func (t *txnStore) Get(key []byte) ([]byte, error) {
	return get(t.txn, key)
}

func (t *txnStore) Has(key []byte) (bool, error) {
	return has(t.txn, key)
}

func (t *txnStore) Delete(key []byte) error {
	return t.txn.Delete(key)
}

func (t *txnStore) Iter(prefix []byte, fn func(k, v []byte) error) error {
	return iter(t.txn, prefix, fn)
}

func (t *txnStore) IterKeys(prefix []byte, fn func(k []byte) error) error {
	return iterKeys(t.txn, prefix, fn)
}

func (t *txnStore) Commit() error {
	return t.txn.Commit()
}

// Discard is safe to call after Commit.
func (t *txnStore) Discard() {
	t.txn.Discard()
}
