package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// CheckU256 rejects values outside [0, 2^256). nil reads as zero.
func CheckU256(vs ...*big.Int) error {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if v.Sign() < 0 || v.Cmp(math.MaxBig256) > 0 {
			return ErrOutOfRange
		}
	}
	return nil
}
