package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

// key: mint/col/address; value: cbor collection
func collectionKey(addr common.Address) []byte {
	return store.NewKey("col", addr)
}

// CreateCollection registers a new collection at c.Address.
func (a *Authorizer) CreateCollection(tds store.Store, c *types.Collection) error {
	if !c.Standard.Tradable() {
		return types.ErrWrongStandard
	}
	if c.Address == (common.Address{}) {
		return types.ErrZeroContract
	}
	if c.Owner == (common.Address{}) || c.Treasury == (common.Address{}) {
		return types.ErrZeroReceiver
	}
	if c.Name == "" {
		return xerrors.New("empty collection name")
	}

	ds := wrap.NewStore(prefix, tds)
	has, err := ds.Has(collectionKey(c.Address))
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("collection %s already exists", c.Address)
	}

	logger.Infow("create collection", "address", c.Address, "name", c.Name, "standard", c.Standard, "owner", c.Owner)

	return a.putCollection(tds, c)
}

func (a *Authorizer) putCollection(tds store.Store, c *types.Collection) error {
	val, err := c.Serialize()
	if err != nil {
		return err
	}
	return wrap.NewStore(prefix, tds).Put(collectionKey(c.Address), val)
}

func (a *Authorizer) Collection(s store.Store, addr common.Address) (*types.Collection, error) {
	val, err := wrap.NewStore(prefix, s).Get(collectionKey(addr))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return nil, types.ErrCollectionNotExist
		}
		return nil, err
	}

	c := new(types.Collection)
	if err := c.Deserialize(val); err != nil {
		return nil, err
	}
	return c, nil
}

// Collections lists every hosted collection in address order.
func (a *Authorizer) Collections(s store.Store) ([]*types.Collection, error) {
	var res []*types.Collection
	err := wrap.NewStore(prefix, s).Iter(store.NewPrefix("col"), func(k, v []byte) error {
		c := new(types.Collection)
		if err := c.Deserialize(v); err != nil {
			return err
		}
		res = append(res, c)
		return nil
	})
	return res, err
}

func (a *Authorizer) ownedCollection(s store.Store, caller, addr common.Address) (*types.Collection, error) {
	c, err := a.Collection(s, addr)
	if err != nil {
		return nil, err
	}
	if c.Owner != caller {
		return nil, types.ErrNotOwner
	}
	return c, nil
}

// SetSigner rotates the trusted signer. Nonces are scoped per signer, so the
// new signer starts with a fresh nonce space.
func (a *Authorizer) SetSigner(tds store.Store, caller, addr, signer common.Address) error {
	c, err := a.ownedCollection(tds, caller, addr)
	if err != nil {
		return err
	}

	logger.Infow("set signer", "collection", addr, "old", c.Signer, "new", signer)

	c.Signer = signer
	return a.putCollection(tds, c)
}

// SetOperator sets the account allowed to mint without authorizations; the
// zero address disables operator mint.
func (a *Authorizer) SetOperator(tds store.Store, caller, addr, operator common.Address) error {
	c, err := a.ownedCollection(tds, caller, addr)
	if err != nil {
		return err
	}

	logger.Infow("set operator", "collection", addr, "operator", operator)

	c.Operator = operator
	return a.putCollection(tds, c)
}
