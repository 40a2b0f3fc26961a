package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

// Collaborators take the caller's transaction store; a returned error means
// nothing they wrote may be committed.

// IOwnership is the single-owner item ledger.
type IOwnership interface {
	// TransferOwnership moves itemID from -> to on behalf of operator, who
	// must be from or approved by from.
	TransferOwnership(tds store.Store, operator, contract common.Address, itemID *big.Int, from, to common.Address) error
	MintOwnership(tds store.Store, contract common.Address, itemID *big.Int, uri string, to common.Address) error

	OwnerOf(s store.Store, contract common.Address, itemID *big.Int) (common.Address, error)
	TokenURI(s store.Store, contract common.Address, itemID *big.Int) (string, error)
}

// IBalance is the multi-balance item ledger.
type IBalance interface {
	TransferBalance(tds store.Store, operator, contract common.Address, itemID *big.Int, from, to common.Address, amount *big.Int) error
	MintBalance(tds store.Store, contract common.Address, itemID *big.Int, to common.Address, amount *big.Int) error

	BalanceOf(s store.Store, contract common.Address, itemID *big.Int, holder common.Address) (*big.Int, error)
}

// IApproval grants an operator every item of an owner in one contract.
type IApproval interface {
	SetApprovalForAll(tds store.Store, contract, owner, operator common.Address, approved bool) error
	IsApprovedForAll(s store.Store, contract, owner, operator common.Address) (bool, error)
}

// IPayment moves settlement currency; the zero address is the native asset.
type IPayment interface {
	// Transfer spends from's own funds.
	Transfer(tds store.Store, currency, from, to common.Address, amount *big.Int) error
	// TransferFrom spends an allowance granted by from to spender.
	TransferFrom(tds store.Store, currency, spender, from, to common.Address, amount *big.Int) error

	BalanceOf(s store.Store, currency, holder common.Address) (*big.Int, error)
}

// IAccessGate answers whether caller may run admin-only mutations.
type IAccessGate interface {
	IsAdmin(s store.Store, caller common.Address) (bool, error)
}

// ICollectionGate answers whether caller administers one collection.
type ICollectionGate interface {
	IsCollectionAdmin(s store.Store, collection, caller common.Address) (bool, error)
}

// ICollections looks up hosted collections.
type ICollections interface {
	Collection(s store.Store, addr common.Address) (*types.Collection, error)
}

// IRoyalty resolves the royalty split of one sale.
type IRoyalty interface {
	CalculateRoyalty(s store.Store, collection common.Address, itemID, price *big.Int) (types.RoyaltySplit, error)
}
