package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
)

var (
	_ inter.IOwnership = (*ItemLedger)(nil)
	_ inter.IBalance   = (*ItemLedger)(nil)
	_ inter.IApproval  = (*ItemLedger)(nil)
)

// ItemLedger holds single-owner and multi-balance items of every hosted
// collection.
//
// key: ledger/owner/contract/id; value: owner
// key: ledger/uri/contract/id; value: uri
// key: ledger/bal/contract/id/holder; value: amount
// key: ledger/approval/contract/owner/operator; value: 1
type ItemLedger struct{}

func NewItemLedger() *ItemLedger {
	return &ItemLedger{}
}

func (l *ItemLedger) ds(s store.Store) store.Store {
	return wrap.NewStore(prefix, s)
}

func (l *ItemLedger) authorized(s store.Store, contract, owner, operator common.Address) error {
	if operator == owner {
		return nil
	}
	ok, err := l.IsApprovedForAll(s, contract, owner, operator)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotApproved
	}
	return nil
}

func (l *ItemLedger) TransferOwnership(tds store.Store, operator, contract common.Address, itemID *big.Int, from, to common.Address) error {
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}

	owner, err := l.OwnerOf(tds, contract, itemID)
	if err != nil {
		return err
	}
	if owner != from {
		return types.ErrWrongFrom
	}

	if err := l.authorized(tds, contract, from, operator); err != nil {
		return err
	}

	logger.Debugw("transfer ownership", "contract", contract, "item", itemID, "from", from, "to", to)

	return l.ds(tds).Put(store.NewKey("owner", contract, itemID), to.Bytes())
}

func (l *ItemLedger) MintOwnership(tds store.Store, contract common.Address, itemID *big.Int, uri string, to common.Address) error {
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}

	ds := l.ds(tds)
	key := store.NewKey("owner", contract, itemID)
	has, err := ds.Has(key)
	if err != nil {
		return err
	}
	if has {
		return types.ErrTokenMinted
	}

	if err := ds.Put(key, to.Bytes()); err != nil {
		return err
	}
	return ds.Put(store.NewKey("uri", contract, itemID), []byte(uri))
}

func (l *ItemLedger) OwnerOf(s store.Store, contract common.Address, itemID *big.Int) (common.Address, error) {
	owner, err := getAddress(l.ds(s), store.NewKey("owner", contract, itemID))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return common.Address{}, types.ErrTokenNotExist
		}
		return common.Address{}, err
	}
	return owner, nil
}

func (l *ItemLedger) TokenURI(s store.Store, contract common.Address, itemID *big.Int) (string, error) {
	val, err := l.ds(s).Get(store.NewKey("uri", contract, itemID))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return "", types.ErrTokenNotExist
		}
		return "", err
	}
	return string(val), nil
}

func (l *ItemLedger) TransferBalance(tds store.Store, operator, contract common.Address, itemID *big.Int, from, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}
	if err := l.authorized(tds, contract, from, operator); err != nil {
		return err
	}

	ds := l.ds(tds)
	fkey := store.NewKey("bal", contract, itemID, from)
	fbal, err := getBig(ds, fkey)
	if err != nil {
		return err
	}
	if fbal.Cmp(amount) < 0 {
		return xerrors.Errorf("%w: need %d, has %d", types.ErrLowBalance, amount, fbal)
	}

	if from == to {
		return nil
	}

	tkey := store.NewKey("bal", contract, itemID, to)
	tbal, err := getBig(ds, tkey)
	if err != nil {
		return err
	}

	if err := putBig(ds, fkey, fbal.Sub(fbal, amount)); err != nil {
		return err
	}

	logger.Debugw("transfer balance", "contract", contract, "item", itemID, "from", from, "to", to, "amount", amount)

	return putBig(ds, tkey, tbal.Add(tbal, amount))
}

func (l *ItemLedger) MintBalance(tds store.Store, contract common.Address, itemID *big.Int, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}

	ds := l.ds(tds)
	key := store.NewKey("bal", contract, itemID, to)
	bal, err := getBig(ds, key)
	if err != nil {
		return err
	}
	return putBig(ds, key, bal.Add(bal, amount))
}

func (l *ItemLedger) BalanceOf(s store.Store, contract common.Address, itemID *big.Int, holder common.Address) (*big.Int, error) {
	return getBig(l.ds(s), store.NewKey("bal", contract, itemID, holder))
}

func (l *ItemLedger) SetApprovalForAll(tds store.Store, contract, owner, operator common.Address, approved bool) error {
	if owner == operator {
		return xerrors.New("approve to caller")
	}

	key := store.NewKey("approval", contract, owner, operator)
	if approved {
		return l.ds(tds).Put(key, []byte{1})
	}
	return l.ds(tds).Delete(key)
}

func (l *ItemLedger) IsApprovedForAll(s store.Store, contract, owner, operator common.Address) (bool, error) {
	return l.ds(s).Has(store.NewKey("approval", contract, owner, operator))
}
