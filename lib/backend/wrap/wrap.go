package wrap

import (
	"bytes"

	"github.com/artwhale/go-artwhale/lib/types/store"
)

var _ store.Store = (*Store)(nil)

// Store scopes every key of the underlying store under a prefix.
type Store struct {
	prefix []byte
	db     store.Store
}

func NewStore(prefix string, db store.Store) *Store {
	return &Store{
		prefix: append([]byte(prefix), store.KeySep...),
		db:     db,
	}
}

func (s *Store) key(k []byte) []byte {
	nk := make([]byte, 0, len(s.prefix)+len(k))
	nk = append(nk, s.prefix...)
	return append(nk, k...)
}

func (s *Store) Put(key, value []byte) error {
	return s.db.Put(s.key(key), value)
}

func (s *Store) Get(key []byte) ([]byte, error) {
	return s.db.Get(s.key(key))
}

func (s *Store) Has(key []byte) (bool, error) {
	return s.db.Has(s.key(key))
}

func (s *Store) Delete(key []byte) error {
	return s.db.Delete(s.key(key))
}

func (s *Store) Iter(prefix []byte, fn func(k, v []byte) error) error {
	return s.db.Iter(s.key(prefix), func(k, v []byte) error {
		return fn(bytes.TrimPrefix(k, s.prefix), v)
	})
}

func (s *Store) IterKeys(prefix []byte, fn func(k []byte) error) error {
	return s.db.IterKeys(s.key(prefix), func(k []byte) error {
		return fn(bytes.TrimPrefix(k, s.prefix))
	})
}
