package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"

	"github.com/artwhale/go-artwhale/build"
)

type RoyaltyEntry struct {
	Receiver common.Address
	Fraction uint64 // share is Fraction / build.RoyaltyDenominator
}

// RoyaltySet keeps definition order; payouts follow it.
type RoyaltySet []RoyaltyEntry

// CheckRoyalty validates a set without touching any state.
func CheckRoyalty(rs RoyaltySet) error {
	var sum uint64
	for _, e := range rs {
		if e.Receiver == (common.Address{}) {
			return ErrWrongReceiver
		}
		if e.Fraction >= build.RoyaltyDenominator {
			return ErrWrongFraction
		}
		sum += e.Fraction
		if sum >= build.RoyaltyDenominator {
			return ErrWrongSum
		}
	}
	return nil
}

func (rs RoyaltySet) Sum() uint64 {
	var sum uint64
	for _, e := range rs {
		sum += e.Fraction
	}
	return sum
}

func (rs RoyaltySet) Serialize() ([]byte, error) {
	if rs == nil {
		rs = RoyaltySet{}
	}
	return cbor.Marshal(rs)
}

func (rs *RoyaltySet) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, rs)
}

// RoyaltySplit is the payout of one sale; Total is the sum of Amounts.
type RoyaltySplit struct {
	Receivers []common.Address
	Amounts   []*big.Int
	Total     *big.Int
}

// Split computes floor(price * fraction / denominator) per entry.
func (rs RoyaltySet) Split(price *big.Int) RoyaltySplit {
	res := RoyaltySplit{
		Receivers: make([]common.Address, 0, len(rs)),
		Amounts:   make([]*big.Int, 0, len(rs)),
		Total:     new(big.Int),
	}
	denom := big.NewInt(build.RoyaltyDenominator)
	for _, e := range rs {
		amount := new(big.Int).Mul(price, new(big.Int).SetUint64(e.Fraction))
		amount.Quo(amount, denom)
		res.Receivers = append(res.Receivers, e.Receiver)
		res.Amounts = append(res.Amounts, amount)
		res.Total.Add(res.Total, amount)
	}
	return res
}
