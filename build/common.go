package build

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	RoyaltyDenominator = 10000 // royalty fractions are in units of 0.01%
	FeeDenominator     = 100   // trade fee is a whole percent

	MintDomainVersion = "1"

	MarketNamespace = "ArtWhale"

	MsgVersion = 1

	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

var (
	// NativeCurrency marks payment in the native asset.
	NativeCurrency = common.Address{}

	DefaultChainID = big.NewInt(1)
)

// MarketAccount holds escrowed items and collected fees.
var MarketAccount = common.BytesToAddress(crypto.Keccak256([]byte(MarketNamespace + "/market")))
