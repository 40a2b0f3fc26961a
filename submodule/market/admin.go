package market

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/control"
)

func (e *Engine) SetTradeFeePercent(tds store.Store, caller common.Address, percent uint64) error {
	return e.reg.SetTradeFeePercent(tds, caller, percent)
}

func (e *Engine) AddSettlementToken(tds store.Store, caller, currency common.Address) error {
	return e.reg.AddSettlementToken(tds, caller, currency)
}

func (e *Engine) RemoveSettlementToken(tds store.Store, caller, currency common.Address) error {
	return e.reg.RemoveSettlementToken(tds, caller, currency)
}

func (e *Engine) AddWhitelist(tds store.Store, caller common.Address, std types.Standard, contract common.Address) error {
	return e.reg.AddWhitelist(tds, caller, std, contract)
}

func (e *Engine) RemoveWhitelist(tds store.Store, caller common.Address, std types.Standard, contract common.Address) error {
	return e.reg.RemoveWhitelist(tds, caller, std, contract)
}

// Withdraw moves collected fees held by the engine to the admin. A nil amount
// takes the whole balance.
func (e *Engine) Withdraw(tds store.Store, caller, currency common.Address, amount *big.Int) (*big.Int, error) {
	if err := control.Check(e.gate.IsAdmin(tds, caller)); err != nil {
		return nil, err
	}

	if amount == nil {
		bal, err := e.pay.BalanceOf(tds, currency, e.self)
		if err != nil {
			return nil, err
		}
		amount = bal
	}

	logger.Infow("withdraw", "currency", currency, "amount", amount, "to", caller)

	if err := e.payOut(tds, currency, caller, amount); err != nil {
		return nil, err
	}
	return amount, nil
}
