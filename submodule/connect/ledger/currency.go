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

var _ inter.IPayment = (*CurrencyLedger)(nil)

// CurrencyLedger keeps balances and allowances of every settlement currency,
// the native asset included under the zero address.
//
// key: ledger/cbal/currency/holder; value: amount
// key: ledger/allow/currency/owner/spender; value: amount
type CurrencyLedger struct{}

func NewCurrencyLedger() *CurrencyLedger {
	return &CurrencyLedger{}
}

func (c *CurrencyLedger) ds(s store.Store) store.Store {
	return wrap.NewStore(prefix, s)
}

func (c *CurrencyLedger) Transfer(tds store.Store, currency, from, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}

	ds := c.ds(tds)
	fkey := store.NewKey("cbal", currency, from)
	fbal, err := getBig(ds, fkey)
	if err != nil {
		return err
	}
	if fbal.Cmp(amount) < 0 {
		return xerrors.Errorf("%w: %s need %d, has %d", types.ErrLowBalance, from, amount, fbal)
	}

	if from == to || amount.Sign() == 0 {
		return nil
	}

	tkey := store.NewKey("cbal", currency, to)
	tbal, err := getBig(ds, tkey)
	if err != nil {
		return err
	}

	if err := putBig(ds, fkey, fbal.Sub(fbal, amount)); err != nil {
		return err
	}
	return putBig(ds, tkey, tbal.Add(tbal, amount))
}

func (c *CurrencyLedger) TransferFrom(tds store.Store, currency, spender, from, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	if spender != from {
		ds := c.ds(tds)
		akey := store.NewKey("allow", currency, from, spender)
		allow, err := getBig(ds, akey)
		if err != nil {
			return err
		}
		if allow.Cmp(amount) < 0 {
			return xerrors.Errorf("%w: %s need %d, has %d", types.ErrLowAllowance, spender, amount, allow)
		}
		if err := putBig(ds, akey, allow.Sub(allow, amount)); err != nil {
			return err
		}
	}

	return c.Transfer(tds, currency, from, to, amount)
}

func (c *CurrencyLedger) BalanceOf(s store.Store, currency, holder common.Address) (*big.Int, error) {
	return getBig(c.ds(s), store.NewKey("cbal", currency, holder))
}

// Approve sets, not adds to, the allowance.
func (c *CurrencyLedger) Approve(tds store.Store, currency, owner, spender common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	return putBig(c.ds(tds), store.NewKey("allow", currency, owner, spender), amount)
}

func (c *CurrencyLedger) Allowance(s store.Store, currency, owner, spender common.Address) (*big.Int, error) {
	return getBig(c.ds(s), store.NewKey("allow", currency, owner, spender))
}

// Mint credits new funds; callers gate who may do it.
func (c *CurrencyLedger) Mint(tds store.Store, currency, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return types.ErrZeroReceiver
	}

	ds := c.ds(tds)
	key := store.NewKey("cbal", currency, to)
	bal, err := getBig(ds, key)
	if err != nil {
		return err
	}
	return putBig(ds, key, bal.Add(bal, amount))
}
