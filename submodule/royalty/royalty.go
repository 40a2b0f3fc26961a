package royalty

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
	"github.com/artwhale/go-artwhale/submodule/control"
)

var logger = logging.Logger("royalty")

const prefix = "royalty"

var _ inter.IRoyalty = (*Ledger)(nil)

// Ledger keeps royalty sets of every collection.
//
// key: royalty/default/collection; value: cbor set
// key: royalty/token/collection/itemID; value: cbor set, may be empty
type Ledger struct {
	gate inter.ICollectionGate
}

func New(gate inter.ICollectionGate) *Ledger {
	return &Ledger{gate: gate}
}

func defaultKey(collection common.Address) []byte {
	return store.NewKey("default", collection)
}

func tokenKey(collection common.Address, itemID *big.Int) []byte {
	return store.NewKey("token", collection, itemID)
}

func (l *Ledger) check(s store.Store, collection, caller common.Address) error {
	return control.Check(l.gate.IsCollectionAdmin(s, collection, caller))
}

// SetDefaultRoyalty replaces the collection-wide set; an empty set clears it.
func (l *Ledger) SetDefaultRoyalty(tds store.Store, caller, collection common.Address, rs types.RoyaltySet) error {
	if err := l.check(tds, collection, caller); err != nil {
		return err
	}
	if err := types.CheckRoyalty(rs); err != nil {
		return err
	}

	ds := wrap.NewStore(prefix, tds)
	if len(rs) == 0 {
		logger.Debugw("clear default royalty", "collection", collection)
		return ds.Delete(defaultKey(collection))
	}

	val, err := rs.Serialize()
	if err != nil {
		return err
	}

	logger.Debugw("set default royalty", "collection", collection, "receivers", len(rs), "sum", rs.Sum())

	return ds.Put(defaultKey(collection), val)
}

// SetTokenRoyalty sets the override of one item. An empty set is stored as
// is and means the item pays no royalty.
func (l *Ledger) SetTokenRoyalty(tds store.Store, caller, collection common.Address, itemID *big.Int, rs types.RoyaltySet) error {
	if itemID == nil {
		return xerrors.New("nil item id")
	}
	if err := l.check(tds, collection, caller); err != nil {
		return err
	}
	if err := types.CheckRoyalty(rs); err != nil {
		return err
	}

	val, err := rs.Serialize()
	if err != nil {
		return err
	}

	logger.Debugw("set token royalty", "collection", collection, "item", itemID, "receivers", len(rs), "sum", rs.Sum())

	return wrap.NewStore(prefix, tds).Put(tokenKey(collection, itemID), val)
}

// ResetTokenRoyalty drops the override so the item follows the default again.
func (l *Ledger) ResetTokenRoyalty(tds store.Store, caller, collection common.Address, itemID *big.Int) error {
	if itemID == nil {
		return xerrors.New("nil item id")
	}
	if err := l.check(tds, collection, caller); err != nil {
		return err
	}

	return wrap.NewStore(prefix, tds).Delete(tokenKey(collection, itemID))
}

func getSet(s store.Store, key []byte) (types.RoyaltySet, bool, error) {
	val, err := wrap.NewStore(prefix, s).Get(key)
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return types.RoyaltySet{}, false, nil
		}
		return nil, false, err
	}

	rs := types.RoyaltySet{}
	if err := rs.Deserialize(val); err != nil {
		return nil, false, xerrors.Errorf("decode royalty set %s: %w", key, err)
	}
	return rs, true, nil
}

func (l *Ledger) DefaultRoyaltyInfo(s store.Store, collection common.Address) (types.RoyaltySet, error) {
	rs, _, err := getSet(s, defaultKey(collection))
	return rs, err
}

// TokenRoyaltyInfo reports the override of an item and whether one is set.
func (l *Ledger) TokenRoyaltyInfo(s store.Store, collection common.Address, itemID *big.Int) (types.RoyaltySet, bool, error) {
	if itemID == nil {
		return nil, false, xerrors.New("nil item id")
	}
	return getSet(s, tokenKey(collection, itemID))
}

// ActiveRoyalty is the override if one is set, else the default.
func (l *Ledger) ActiveRoyalty(s store.Store, collection common.Address, itemID *big.Int) (types.RoyaltySet, error) {
	rs, ok, err := l.TokenRoyaltyInfo(s, collection, itemID)
	if err != nil {
		return nil, err
	}
	if ok {
		return rs, nil
	}
	return l.DefaultRoyaltyInfo(s, collection)
}

func (l *Ledger) CalculateRoyalty(s store.Store, collection common.Address, itemID, price *big.Int) (types.RoyaltySplit, error) {
	if price == nil || price.Sign() < 0 {
		return types.RoyaltySplit{}, types.ErrWrongPrice
	}

	rs, err := l.ActiveRoyalty(s, collection, itemID)
	if err != nil {
		return types.RoyaltySplit{}, err
	}
	return rs.Split(price), nil
}
