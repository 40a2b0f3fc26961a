package market

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
	"github.com/artwhale/go-artwhale/submodule/registry"
)

var logger = logging.Logger("market")

const (
	prefix    = "market"
	cacheSize = 1024
)

// Engine is the order book. Items of open orders are held by Self; fees are
// paid to Treasury.
//
// key: market/seq; value: next order id
// key: market/order/id; value: cbor order
// key: market/custody/id; value: cbor custody, only while open
// key: market/idx/status/status/id; value: nil
// key: market/idx/seller/seller/status/id; value: nil
// key: market/count/status; value: count
// key: market/count/seller/seller/status; value: count
//
// Both indexes and counters also carry every order under StatusAny.
type Engine struct {
	self     common.Address
	treasury common.Address

	reg      *registry.Registry
	royalty  inter.IRoyalty
	owners   inter.IOwnership
	balances inter.IBalance
	pay      inter.IPayment
	gate     inter.IAccessGate

	// terminal orders never change
	cache *lru.ARCCache
}

type Config struct {
	Self     common.Address
	Treasury common.Address // defaults to Self

	Registry *registry.Registry
	Royalty  inter.IRoyalty
	Owners   inter.IOwnership
	Balances inter.IBalance
	Payment  inter.IPayment
	Gate     inter.IAccessGate
}

func New(cfg Config) (*Engine, error) {
	if cfg.Self == (common.Address{}) {
		return nil, xerrors.New("market account is not set")
	}
	if cfg.Registry == nil || cfg.Royalty == nil || cfg.Owners == nil || cfg.Balances == nil || cfg.Payment == nil || cfg.Gate == nil {
		return nil, xerrors.New("market collaborators are not set")
	}

	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, err
	}

	treasury := cfg.Treasury
	if treasury == (common.Address{}) {
		treasury = cfg.Self
	}

	return &Engine{
		self:     cfg.Self,
		treasury: treasury,
		reg:      cfg.Registry,
		royalty:  cfg.Royalty,
		owners:   cfg.Owners,
		balances: cfg.Balances,
		pay:      cfg.Payment,
		gate:     cfg.Gate,
		cache:    cache,
	}, nil
}

func (e *Engine) Address() common.Address {
	return e.self
}

func (e *Engine) Treasury() common.Address {
	return e.treasury
}

func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

func (e *Engine) ds(s store.Store) store.Store {
	return wrap.NewStore(prefix, s)
}

func orderKey(id uint64) []byte {
	return store.NewKey("order", id)
}

func custodyKey(id uint64) []byte {
	return store.NewKey("custody", id)
}

func statusKey(st types.OrderStatus, id uint64) []byte {
	return store.NewKey("idx", "status", uint8(st), id)
}

func sellerKey(seller common.Address, st types.OrderStatus, id uint64) []byte {
	return store.NewKey("idx", "seller", seller, uint8(st), id)
}

func countKey(st types.OrderStatus) []byte {
	return store.NewKey("count", uint8(st))
}

func sellerCountKey(seller common.Address, st types.OrderStatus) []byte {
	return store.NewKey("count", "seller", seller, uint8(st))
}

func (e *Engine) getUint(s store.Store, key []byte) (uint64, error) {
	val, err := e.ds(s).Get(key)
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if len(val) != 8 {
		return 0, xerrors.Errorf("wrong counter length %d at %s", len(val), key)
	}
	return binary.BigEndian.Uint64(val), nil
}

func (e *Engine) putUint(tds store.Store, key []byte, v uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return e.ds(tds).Put(key, buf)
}

func (e *Engine) addUint(tds store.Store, key []byte, delta int) error {
	v, err := e.getUint(tds, key)
	if err != nil {
		return err
	}
	if delta < 0 && v < uint64(-delta) {
		return xerrors.Errorf("counter %s underflow", key)
	}
	return e.putUint(tds, key, uint64(int64(v)+int64(delta)))
}

// getOrder reads straight from s; a missing id gives the zero order.
func (e *Engine) getOrder(s store.Store, id uint64) (*types.Order, error) {
	val, err := e.ds(s).Get(orderKey(id))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return &types.Order{ID: id}, nil
		}
		return nil, err
	}

	o := new(types.Order)
	if err := o.Deserialize(val); err != nil {
		return nil, xerrors.Errorf("decode order %d: %w", id, err)
	}
	return o, nil
}

func (e *Engine) putOrder(tds store.Store, o *types.Order) error {
	val, err := o.Serialize()
	if err != nil {
		return err
	}
	return e.ds(tds).Put(orderKey(o.ID), val)
}

// index adds o under its status and StatusAny.
func (e *Engine) index(tds store.Store, o *types.Order) error {
	ds := e.ds(tds)
	for _, st := range []types.OrderStatus{o.Status, types.StatusAny} {
		if err := ds.Put(statusKey(st, o.ID), nil); err != nil {
			return err
		}
		if err := ds.Put(sellerKey(o.Seller, st, o.ID), nil); err != nil {
			return err
		}
		if err := e.addUint(tds, countKey(st), 1); err != nil {
			return err
		}
		if err := e.addUint(tds, sellerCountKey(o.Seller, st), 1); err != nil {
			return err
		}
	}
	return nil
}

// move re-files o from its current status to next.
func (e *Engine) move(tds store.Store, o *types.Order, next types.OrderStatus) error {
	ds := e.ds(tds)
	if err := ds.Delete(statusKey(o.Status, o.ID)); err != nil {
		return err
	}
	if err := ds.Delete(sellerKey(o.Seller, o.Status, o.ID)); err != nil {
		return err
	}
	if err := e.addUint(tds, countKey(o.Status), -1); err != nil {
		return err
	}
	if err := e.addUint(tds, sellerCountKey(o.Seller, o.Status), -1); err != nil {
		return err
	}

	if err := ds.Put(statusKey(next, o.ID), nil); err != nil {
		return err
	}
	if err := ds.Put(sellerKey(o.Seller, next, o.ID), nil); err != nil {
		return err
	}
	if err := e.addUint(tds, countKey(next), 1); err != nil {
		return err
	}
	if err := e.addUint(tds, sellerCountKey(o.Seller, next), 1); err != nil {
		return err
	}

	o.Status = next
	return e.putOrder(tds, o)
}
