package tx

import (
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

type TxStore interface {
	GetTXMsg(mid types.MsgID) (*SignedMessage, error)
	GetReceipt(mid types.MsgID) (*Receipt, error)
	GetMsgByHeight(ht uint64) (types.MsgID, error)

	// PutApplied writes into the caller's transaction.
	PutApplied(tds store.Store, sm *SignedMessage, r *Receipt) error
}

var _ TxStore = (*TxStoreImpl)(nil)

// key: tx/msg/id; value: signed message
// key: tx/receipt/id; value: receipt
// key: tx/height/ht; value: id
type TxStoreImpl struct {
	ds store.KVStore

	msgCache *lru.ARCCache
	rcpCache *lru.TwoQueueCache
}

func NewTxStore(ds store.KVStore) (*TxStoreImpl, error) {
	mc, err := lru.NewARC(1024)
	if err != nil {
		return nil, err
	}

	rc, err := lru.New2Q(1024)
	if err != nil {
		return nil, err
	}

	return &TxStoreImpl{
		ds:       ds,
		msgCache: mc,
		rcpCache: rc,
	}, nil
}

func (ts *TxStoreImpl) GetTXMsg(mid types.MsgID) (*SignedMessage, error) {
	val, ok := ts.msgCache.Get(mid)
	if ok {
		return val.(*SignedMessage), nil
	}

	b, err := ts.ds.Get(store.NewKey("tx", "msg", mid.Hex()))
	if err != nil {
		return nil, xerrors.Errorf("get message %s: %w", mid, err)
	}

	sm := new(SignedMessage)
	if err := sm.Deserialize(b); err != nil {
		return nil, err
	}

	ts.msgCache.Add(mid, sm)
	return sm, nil
}

func (ts *TxStoreImpl) GetReceipt(mid types.MsgID) (*Receipt, error) {
	val, ok := ts.rcpCache.Get(mid)
	if ok {
		return val.(*Receipt), nil
	}

	b, err := ts.ds.Get(store.NewKey("tx", "receipt", mid.Hex()))
	if err != nil {
		return nil, xerrors.Errorf("get receipt %s: %w", mid, err)
	}

	r := new(Receipt)
	if err := r.Deserialize(b); err != nil {
		return nil, err
	}

	ts.rcpCache.Add(mid, r)
	return r, nil
}

func (ts *TxStoreImpl) GetMsgByHeight(ht uint64) (types.MsgID, error) {
	b, err := ts.ds.Get(store.NewKey("tx", "height", ht))
	if err != nil {
		return types.Undef, xerrors.Errorf("get message at %d: %w", ht, err)
	}
	return types.FromBytes(b)
}

func (ts *TxStoreImpl) PutApplied(tds store.Store, sm *SignedMessage, r *Receipt) error {
	sb, err := sm.Serialize()
	if err != nil {
		return err
	}
	if err := tds.Put(store.NewKey("tx", "msg", r.ID.Hex()), sb); err != nil {
		return err
	}

	rb, err := r.Serialize()
	if err != nil {
		return err
	}
	if err := tds.Put(store.NewKey("tx", "receipt", r.ID.Hex()), rb); err != nil {
		return err
	}

	return tds.Put(store.NewKey("tx", "height", r.Height), r.ID.Bytes())
}
