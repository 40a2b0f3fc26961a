package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

var logger = logging.Logger("ledger")

const prefix = "ledger"

func getBig(s store.Store, key []byte) (*big.Int, error) {
	val, err := s.Get(key)
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return new(big.Int), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(val), nil
}

// putBig removes the key once the value reaches zero.
func putBig(s store.Store, key []byte, v *big.Int) error {
	if v.Sign() == 0 {
		return s.Delete(key)
	}
	return s.Put(key, v.Bytes())
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return xerrors.Errorf("invalid amount %v", amount)
	}
	return nil
}

func getAddress(s store.Store, key []byte) (common.Address, error) {
	val, err := s.Get(key)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(val), nil
}
