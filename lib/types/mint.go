package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MintAuthorization is issued and signed off-line by a collection's signer.
// URI applies to single-owner collections, Amount to multi-balance ones.
type MintAuthorization struct {
	Target    common.Address
	TokenID   *big.Int
	Amount    *big.Int
	URI       string
	MintPrice *big.Int
	Nonce     *big.Int
	Deadline  *big.Int // unix seconds, inclusive
}

type SignedMintAuthorization struct {
	MintAuthorization
	Signature []byte
}
