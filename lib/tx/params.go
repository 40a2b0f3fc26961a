package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/artwhale/go-artwhale/lib/types"
)

type CollectionParams struct {
	Name     string
	Symbol   string
	Standard types.Standard
	Signer   common.Address
	Treasury common.Address // zero means the creator
	BaseURI  string
	Royalty  types.RoyaltySet // initial default royalty
}

// AddressParams serves SetSigner and SetOperator.
type AddressParams struct {
	Collection common.Address
	Address    common.Address
}

type RoyaltyParams struct {
	Collection common.Address
	TokenID    *big.Int // nil for the default set
	Royalty    types.RoyaltySet
}

// CurrencyParams serves settlement token changes.
type CurrencyParams struct {
	Currency common.Address
}

type WhitelistParams struct {
	Standard types.Standard
	Contract common.Address
}

type FeeParams struct {
	Percent uint64
}

type WithdrawParams struct {
	Currency common.Address
	Amount   *big.Int
}

type CreateOrderParams struct {
	Standard types.Standard
	Contract common.Address
	ItemID   *big.Int
	Quantity *big.Int
	Currency common.Address
	Price    *big.Int
	Kind     types.OrderKind
}

type OrderParams struct {
	OrderID uint64
}

type ExecuteParams struct {
	OrderID uint64
	// only consulted for native settlement
	NativeBeneficiary common.Address
}

type MintParams struct {
	Collection common.Address
	types.SignedMintAuthorization
}

type OperatorMintParams struct {
	Collection common.Address
	To         common.Address
	TokenID    *big.Int
	Amount     *big.Int
	URI        string
}

type ApprovalParams struct {
	Contract common.Address
	Operator common.Address
	Approved bool
}

type AllowanceParams struct {
	Currency common.Address
	Spender  common.Address
	Amount   *big.Int
}

type TransferParams struct {
	Currency common.Address
	To       common.Address
	Amount   *big.Int
}
