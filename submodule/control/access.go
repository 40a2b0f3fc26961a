package control

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
)

var logger = logging.Logger("control")

const (
	prefix   = "control"
	ownerKey = "owner"
)

var (
	_ inter.IAccessGate     = (*MarketGate)(nil)
	_ inter.ICollectionGate = (*CollectionGate)(nil)
)

// MarketGate admits the marketplace owner kept in state.
// key: control/owner; value: address
type MarketGate struct{}

func NewMarketGate() *MarketGate {
	return &MarketGate{}
}

// Init records the owner once, at genesis.
func (g *MarketGate) Init(tds store.Store, owner common.Address) error {
	if owner == (common.Address{}) {
		return xerrors.New("zero market owner")
	}

	ds := wrap.NewStore(prefix, tds)
	has, err := ds.Has(store.NewKey(ownerKey))
	if err != nil {
		return err
	}
	if has {
		return xerrors.New("market owner is already set")
	}

	logger.Infow("market owner", "owner", owner)

	return ds.Put(store.NewKey(ownerKey), owner.Bytes())
}

func (g *MarketGate) Owner(s store.Store) (common.Address, error) {
	val, err := wrap.NewStore(prefix, s).Get(store.NewKey(ownerKey))
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(val), nil
}

func (g *MarketGate) IsAdmin(s store.Store, caller common.Address) (bool, error) {
	owner, err := g.Owner(s)
	if err != nil {
		return false, err
	}
	return owner == caller, nil
}

// CollectionGate admits the owner of each collection.
type CollectionGate struct {
	cols inter.ICollections
}

func NewCollectionGate(cols inter.ICollections) *CollectionGate {
	return &CollectionGate{cols: cols}
}

func (g *CollectionGate) IsCollectionAdmin(s store.Store, collection, caller common.Address) (bool, error) {
	col, err := g.cols.Collection(s, collection)
	if err != nil {
		return false, err
	}
	return col.Owner == caller, nil
}

// Check turns a negative answer into ErrNotOwner.
func Check(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotOwner
	}
	return nil
}
