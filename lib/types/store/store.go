package store

import "errors"

var (
	ErrNotFound = errors.New("key not found")
	// ErrStopIter ends an iteration early without reporting an error.
	ErrStopIter = errors.New("stop iteration")
)

// Store is the read-write view shared by the kv store and its transactions.
// Keys and values handed to iteration callbacks are copies.
type Store interface {
	Put(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error

	Iter(prefix []byte, fn func(k, v []byte) error) error
	IterKeys(prefix []byte, fn func(k []byte) error) error
}

type KVStore interface {
	Store

	Size() int64
	Sync() error
	Close() error

	// NewTxnStore opens a transaction; update false gives a read-only snapshot.
	NewTxnStore(update bool) (TxnStore, error)
}

type TxnStore interface {
	Store
	Commit() error
	Discard()
}
