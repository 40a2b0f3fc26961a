package registry

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
	"github.com/artwhale/go-artwhale/submodule/control"
)

var logger = logging.Logger("registry")

const prefix = "registry"

// Registry holds the admin-controlled sets the market consults.
//
// key: registry/fee; value: percent
// key: registry/cur/seq; value: next insertion number
// key: registry/cur/idx/seq; value: currency
// key: registry/cur/addr/currency; value: seq
// key: registry/wl/standard/contract; value: 1
//
// The native currency is implicit: always present and listed first.
type Registry struct {
	gate inter.IAccessGate
}

func New(gate inter.IAccessGate) *Registry {
	return &Registry{gate: gate}
}

func (r *Registry) ds(s store.Store) store.Store {
	return wrap.NewStore(prefix, s)
}

func (r *Registry) check(s store.Store, caller common.Address) error {
	return control.Check(r.gate.IsAdmin(s, caller))
}

func encodeUint(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, xerrors.Errorf("wrong uint64 length %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Registry) getUint(s store.Store, key []byte) (uint64, error) {
	val, err := r.ds(s).Get(key)
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return decodeUint(val)
}

// InitFee sets the fee at genesis, without the admin check.
func (r *Registry) InitFee(tds store.Store, percent uint64) error {
	if percent >= build.FeeDenominator {
		return types.ErrWrongPercent
	}
	return r.ds(tds).Put(store.NewKey("fee"), encodeUint(percent))
}

func (r *Registry) SetTradeFeePercent(tds store.Store, caller common.Address, percent uint64) error {
	if err := r.check(tds, caller); err != nil {
		return err
	}

	logger.Infow("set trade fee", "percent", percent)

	return r.InitFee(tds, percent)
}

func (r *Registry) TradeFeePercent(s store.Store) (uint64, error) {
	return r.getUint(s, store.NewKey("fee"))
}

func (r *Registry) AddSettlementToken(tds store.Store, caller, currency common.Address) error {
	if err := r.check(tds, caller); err != nil {
		return err
	}

	has, err := r.IsSettlementToken(tds, currency)
	if err != nil || has {
		return err
	}

	seq, err := r.getUint(tds, store.NewKey("cur", "seq"))
	if err != nil {
		return err
	}

	ds := r.ds(tds)
	if err := ds.Put(store.NewKey("cur", "idx", seq), currency.Bytes()); err != nil {
		return err
	}
	if err := ds.Put(store.NewKey("cur", "addr", currency), encodeUint(seq)); err != nil {
		return err
	}

	logger.Infow("add settlement token", "currency", currency)

	return ds.Put(store.NewKey("cur", "seq"), encodeUint(seq+1))
}

// RemoveSettlementToken is a no-op for absent tokens and the native currency.
func (r *Registry) RemoveSettlementToken(tds store.Store, caller, currency common.Address) error {
	if err := r.check(tds, caller); err != nil {
		return err
	}
	if currency == build.NativeCurrency {
		return nil
	}

	ds := r.ds(tds)
	akey := store.NewKey("cur", "addr", currency)
	val, err := ds.Get(akey)
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	seq, err := decodeUint(val)
	if err != nil {
		return err
	}

	if err := ds.Delete(store.NewKey("cur", "idx", seq)); err != nil {
		return err
	}

	logger.Infow("remove settlement token", "currency", currency)

	return ds.Delete(akey)
}

func (r *Registry) IsSettlementToken(s store.Store, currency common.Address) (bool, error) {
	if currency == build.NativeCurrency {
		return true, nil
	}
	return r.ds(s).Has(store.NewKey("cur", "addr", currency))
}

// SettlementTokens lists currencies in the order they were added.
func (r *Registry) SettlementTokens(s store.Store) ([]common.Address, error) {
	res := []common.Address{build.NativeCurrency}
	err := r.ds(s).Iter(store.NewPrefix("cur", "idx"), func(k, v []byte) error {
		res = append(res, common.BytesToAddress(v))
		return nil
	})
	return res, err
}

func whitelistKey(std types.Standard, contract common.Address) []byte {
	return store.NewKey("wl", uint8(std), contract)
}

func (r *Registry) checkItem(std types.Standard, contract common.Address) error {
	if !std.Tradable() {
		return types.ErrWrongStandard
	}
	if contract == (common.Address{}) {
		return types.ErrZeroContract
	}
	return nil
}

func (r *Registry) AddWhitelist(tds store.Store, caller common.Address, std types.Standard, contract common.Address) error {
	if err := r.check(tds, caller); err != nil {
		return err
	}
	if err := r.checkItem(std, contract); err != nil {
		return err
	}

	logger.Infow("add whitelist", "standard", std, "contract", contract)

	return r.ds(tds).Put(whitelistKey(std, contract), []byte{1})
}

func (r *Registry) RemoveWhitelist(tds store.Store, caller common.Address, std types.Standard, contract common.Address) error {
	if err := r.check(tds, caller); err != nil {
		return err
	}
	if err := r.checkItem(std, contract); err != nil {
		return err
	}

	logger.Infow("remove whitelist", "standard", std, "contract", contract)

	return r.ds(tds).Delete(whitelistKey(std, contract))
}

func (r *Registry) IsWhitelisted(s store.Store, std types.Standard, contract common.Address) (bool, error) {
	if !std.Tradable() {
		return false, nil
	}
	return r.ds(s).Has(whitelistKey(std, contract))
}

// Whitelist lists the contracts of one standard in address order.
func (r *Registry) Whitelist(s store.Store, std types.Standard) ([]common.Address, error) {
	if !std.Tradable() {
		return nil, types.ErrWrongStandard
	}

	pre := store.NewPrefix("wl", uint8(std))
	res := make([]common.Address, 0, 8)
	err := r.ds(s).IterKeys(pre, func(k []byte) error {
		res = append(res, common.HexToAddress(string(k[len(pre):])))
		return nil
	})
	return res, err
}
