package market

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

func (e *Engine) checkCreate(s store.Store, p *tx.CreateOrderParams) error {
	if !p.Standard.Tradable() {
		return types.ErrWrongStandard
	}
	if p.Contract == (common.Address{}) {
		return types.ErrZeroContract
	}

	ok, err := e.reg.IsWhitelisted(s, p.Standard, p.Contract)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotRegistered
	}

	if p.Quantity == nil || p.Quantity.Sign() <= 0 || types.CheckU256(p.Quantity) != nil {
		return types.ErrWrongAmount
	}
	if p.Standard == types.SingleOwner && p.Quantity.Cmp(big.NewInt(1)) != 0 {
		return types.ErrWrongAmount
	}

	if p.Currency == build.NativeCurrency {
		return types.ErrZeroCurrency
	}
	ok, err = e.reg.IsSettlementToken(s, p.Currency)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrCurrencyUnknown
	}

	if p.Price == nil || p.Price.Sign() <= 0 || types.CheckU256(p.Price) != nil {
		return types.ErrWrongPrice
	}

	if p.ItemID == nil {
		return types.ErrOutOfRange
	}
	return types.CheckU256(p.ItemID)
}

// moveItem transfers the item of c from -> to, with the engine as operator.
func (e *Engine) moveItem(tds store.Store, c *types.Custody, from, to common.Address) error {
	switch c.Standard {
	case types.SingleOwner:
		return e.owners.TransferOwnership(tds, e.self, c.Contract, c.ItemID, from, to)
	case types.MultiBalance:
		return e.balances.TransferBalance(tds, e.self, c.Contract, c.ItemID, from, to, c.Quantity)
	default:
		return types.ErrWrongStandard
	}
}

// CreateOrder escrows the item of seller and opens an order for it. The
// seller must have approved the engine on the item contract.
func (e *Engine) CreateOrder(tds store.Store, seller common.Address, p *tx.CreateOrderParams) (uint64, error) {
	if err := e.checkCreate(tds, p); err != nil {
		return 0, err
	}

	c := &types.Custody{
		Standard: p.Standard,
		Contract: p.Contract,
		ItemID:   new(big.Int).Set(p.ItemID),
		Quantity: new(big.Int).Set(p.Quantity),
	}
	if err := e.moveItem(tds, c, seller, e.self); err != nil {
		return 0, err
	}

	id, err := e.getUint(tds, store.NewKey("seq"))
	if err != nil {
		return 0, err
	}
	if err := e.putUint(tds, store.NewKey("seq"), id+1); err != nil {
		return 0, err
	}

	cval, err := c.Serialize()
	if err != nil {
		return 0, err
	}
	if err := e.ds(tds).Put(custodyKey(id), cval); err != nil {
		return 0, err
	}

	o := &types.Order{
		ID:       id,
		Standard: p.Standard,
		Contract: p.Contract,
		ItemID:   c.ItemID,
		Quantity: c.Quantity,
		Currency: p.Currency,
		Price:    new(big.Int).Set(p.Price),
		Status:   types.StatusOpen,
		Seller:   seller,
		Kind:     p.Kind,
	}
	if err := e.putOrder(tds, o); err != nil {
		return 0, err
	}
	if err := e.index(tds, o); err != nil {
		return 0, err
	}

	logger.Debugw("create order", "id", id, "seller", seller, "contract", p.Contract, "item", p.ItemID, "price", p.Price)

	return id, nil
}

func (e *Engine) custody(s store.Store, id uint64) (*types.Custody, error) {
	val, err := e.ds(s).Get(custodyKey(id))
	if err != nil {
		return nil, xerrors.Errorf("custody of order %d: %w", id, err)
	}
	c := new(types.Custody)
	if err := c.Deserialize(val); err != nil {
		return nil, err
	}
	return c, nil
}

// release hands the escrowed item to the receiver and drops the custody record.
func (e *Engine) release(tds store.Store, id uint64, to common.Address) error {
	c, err := e.custody(tds, id)
	if err != nil {
		return err
	}
	if err := e.moveItem(tds, c, e.self, to); err != nil {
		return err
	}
	return e.ds(tds).Delete(custodyKey(id))
}

// CancelOrder returns the item to the seller.
func (e *Engine) CancelOrder(tds store.Store, caller common.Address, id uint64) error {
	o, err := e.getOrder(tds, id)
	if err != nil {
		return err
	}
	if o.Status == types.StatusNull {
		return types.ErrOrderNotExist
	}
	if o.Seller != caller {
		return types.ErrNotSeller
	}
	if o.Status != types.StatusOpen {
		return types.ErrOrderNotOpen
	}

	if err := e.release(tds, id, o.Seller); err != nil {
		return err
	}

	logger.Debugw("cancel order", "id", id)

	return e.move(tds, o, types.StatusCancelled)
}

// Quote splits the price of o under the current fee and royalty settings.
func (e *Engine) Quote(s store.Store, o *types.Order) (*types.Settlement, error) {
	percent, err := e.reg.TradeFeePercent(s)
	if err != nil {
		return nil, err
	}

	fee := new(big.Int).Mul(o.Price, new(big.Int).SetUint64(percent))
	fee.Quo(fee, big.NewInt(build.FeeDenominator))

	split, err := e.royalty.CalculateRoyalty(s, o.Contract, o.ItemID, o.Price)
	if err != nil {
		return nil, err
	}

	proceeds := new(big.Int).Sub(o.Price, fee)
	proceeds.Sub(proceeds, split.Total)
	if proceeds.Sign() < 0 {
		return nil, xerrors.Errorf("%w: price %d, fee %d, royalty %d", types.ErrSettlementOverflow, o.Price, fee, split.Total)
	}

	return &types.Settlement{
		OrderID:        o.ID,
		Currency:       o.Currency,
		Price:          new(big.Int).Set(o.Price),
		Fee:            fee,
		Royalty:        split,
		SellerProceeds: proceeds,
	}, nil
}

func (e *Engine) payOut(tds store.Store, currency, to common.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return e.pay.Transfer(tds, currency, e.self, to, amount)
}

// ExecuteOrder sells the item of an open order to buyer. nativeBeneficiary is
// only consulted for native settlement, which orders never use.
func (e *Engine) ExecuteOrder(tds store.Store, buyer common.Address, id uint64, nativeBeneficiary common.Address) (*types.Settlement, error) {
	o, err := e.getOrder(tds, id)
	if err != nil {
		return nil, err
	}
	if o.Status == types.StatusNull {
		return nil, types.ErrOrderNotExist
	}
	if o.Seller == buyer {
		return nil, types.ErrSellerBuy
	}
	if o.Status != types.StatusOpen {
		return nil, types.ErrOrderNotOpen
	}

	st, err := e.Quote(tds, o)
	if err != nil {
		return nil, err
	}
	st.Buyer = buyer

	if err := e.pay.TransferFrom(tds, o.Currency, e.self, buyer, e.self, o.Price); err != nil {
		return nil, err
	}
	for i, r := range st.Royalty.Receivers {
		if err := e.payOut(tds, o.Currency, r, st.Royalty.Amounts[i]); err != nil {
			return nil, err
		}
	}
	if e.treasury != e.self {
		if err := e.payOut(tds, o.Currency, e.treasury, st.Fee); err != nil {
			return nil, err
		}
	}
	if err := e.payOut(tds, o.Currency, o.Seller, st.SellerProceeds); err != nil {
		return nil, err
	}

	if err := e.release(tds, id, buyer); err != nil {
		return nil, err
	}

	o.Buyer = buyer
	if err := e.move(tds, o, types.StatusExecuted); err != nil {
		return nil, err
	}

	logger.Debugw("execute order", "id", id, "buyer", buyer, "price", o.Price, "fee", st.Fee, "royalty", st.Royalty.Total)

	return st, nil
}
