package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
)

// key: market/order/id; value: cbor
type Order struct {
	ID       uint64
	Standard Standard
	Contract common.Address
	ItemID   *big.Int
	Quantity *big.Int
	Currency common.Address
	Price    *big.Int
	Status   OrderStatus
	Seller   common.Address
	Buyer    common.Address // zero until executed
	Kind     OrderKind
}

// Copy returns a deep copy of o.
func (o *Order) Copy() *Order {
	c := *o
	c.ItemID = copyBig(o.ItemID)
	c.Quantity = copyBig(o.Quantity)
	c.Price = copyBig(o.Price)
	return &c
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func (o *Order) Serialize() ([]byte, error) {
	return cbor.Marshal(o)
}

func (o *Order) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, o)
}

// OrderPage is one page of ids plus the size of the whole filtered set,
// both taken from the same snapshot.
type OrderPage struct {
	IDs   []uint64
	Total uint64
}

// Settlement is how the price of an executed order was split.
type Settlement struct {
	OrderID        uint64
	Buyer          common.Address
	Currency       common.Address
	Price          *big.Int
	Fee            *big.Int
	Royalty        RoyaltySplit
	SellerProceeds *big.Int
}

// Custody records the item held for an open order.
type Custody struct {
	Standard Standard
	Contract common.Address
	ItemID   *big.Int
	Quantity *big.Int
}

func (c *Custody) Serialize() ([]byte, error) {
	return cbor.Marshal(c)
}

func (c *Custody) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, c)
}
