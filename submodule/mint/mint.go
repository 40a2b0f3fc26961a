package mint

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/backend/wrap"
	"github.com/artwhale/go-artwhale/lib/crypto/eip712"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	inter "github.com/artwhale/go-artwhale/submodule/connect/interface"
)

var logger = logging.Logger("mint")

const prefix = "mint"

var _ inter.ICollections = (*Authorizer)(nil)

// Authorizer hosts collections and redeems signed mint authorizations.
//
// key: mint/nonce/collection/signer/nonce; value: 1
type Authorizer struct {
	chainID  *big.Int
	owners   inter.IOwnership
	balances inter.IBalance
	pay      inter.IPayment
}

func New(chainID *big.Int, owners inter.IOwnership, balances inter.IBalance, pay inter.IPayment) *Authorizer {
	if chainID == nil {
		chainID = build.DefaultChainID
	}
	return &Authorizer{
		chainID:  new(big.Int).Set(chainID),
		owners:   owners,
		balances: balances,
		pay:      pay,
	}
}

func (a *Authorizer) ChainID() *big.Int {
	return new(big.Int).Set(a.chainID)
}

func nonceKey(col, signer common.Address, nonce *big.Int) []byte {
	return store.NewKey("nonce", col, signer, orZero(nonce))
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// NonceUsed reports whether nonce is consumed for the collection's current
// signer.
func (a *Authorizer) NonceUsed(s store.Store, addr common.Address, nonce *big.Int) (bool, error) {
	if err := types.CheckU256(nonce); err != nil {
		return false, err
	}
	c, err := a.Collection(s, addr)
	if err != nil {
		return false, err
	}
	return wrap.NewStore(prefix, s).Has(nonceKey(addr, c.Signer, nonce))
}

func (a *Authorizer) Domain(c *types.Collection) eip712.Domain {
	return eip712.NewDomain(c, a.chainID)
}

// MintDigest is the digest a signer of the collection must sign.
func (a *Authorizer) MintDigest(s store.Store, addr common.Address, auth *types.MintAuthorization) (common.Hash, error) {
	c, err := a.Collection(s, addr)
	if err != nil {
		return common.Hash{}, err
	}
	return eip712.MintDigest(a.Domain(c), c.Standard, auth)
}

// Mint redeems a signed authorization paid with value by caller. Checks run
// in order: range, nonce, deadline, price, signature.
func (a *Authorizer) Mint(tds store.Store, caller, addr common.Address, value *big.Int, now int64, sma *types.SignedMintAuthorization) error {
	c, err := a.Collection(tds, addr)
	if err != nil {
		return err
	}

	auth := &sma.MintAuthorization
	// the digest sees these modulo 2^256, keys and comparisons do not
	if err := types.CheckU256(auth.TokenID, auth.Amount, auth.MintPrice, auth.Nonce, auth.Deadline, value); err != nil {
		return err
	}

	ds := wrap.NewStore(prefix, tds)
	nkey := nonceKey(addr, c.Signer, auth.Nonce)
	used, err := ds.Has(nkey)
	if err != nil {
		return err
	}
	if used {
		return types.ErrNonceUsed
	}

	if orZero(auth.Deadline).Cmp(big.NewInt(now)) < 0 {
		return types.ErrExpiredDeadline
	}

	if orZero(value).Cmp(orZero(auth.MintPrice)) != 0 {
		return types.ErrWrongMintPrice
	}

	signer, err := eip712.RecoverMint(a.Domain(c), c.Standard, auth, sma.Signature)
	if err != nil || signer != c.Signer {
		logger.Debugw("mint signature rejected", "collection", addr, "recovered", signer, "err", err)
		return types.ErrInvalidSignature
	}

	if err := ds.Put(nkey, []byte{1}); err != nil {
		return err
	}

	if err := a.mintItem(tds, c, auth.Target, auth.TokenID, auth.Amount, auth.URI); err != nil {
		return err
	}

	if value != nil && value.Sign() > 0 {
		if err := a.pay.Transfer(tds, build.NativeCurrency, caller, c.Treasury, value); err != nil {
			return err
		}
	}

	logger.Debugw("mint", "collection", addr, "target", auth.Target, "token", auth.TokenID, "nonce", auth.Nonce)

	return nil
}

// OperatorMint mints without an authorization; only the collection operator
// may call it.
func (a *Authorizer) OperatorMint(tds store.Store, caller, addr, to common.Address, tokenID, amount *big.Int, uri string) error {
	c, err := a.Collection(tds, addr)
	if err != nil {
		return err
	}
	if c.Operator == (common.Address{}) || c.Operator != caller {
		return types.ErrNotOperator
	}
	if err := types.CheckU256(tokenID, amount); err != nil {
		return err
	}

	logger.Debugw("operator mint", "collection", addr, "to", to, "token", tokenID)

	return a.mintItem(tds, c, to, tokenID, amount, uri)
}

func (a *Authorizer) mintItem(tds store.Store, c *types.Collection, to common.Address, tokenID, amount *big.Int, uri string) error {
	if tokenID == nil {
		tokenID = new(big.Int)
	}

	switch c.Standard {
	case types.SingleOwner:
		return a.owners.MintOwnership(tds, c.Address, tokenID, uri, to)
	case types.MultiBalance:
		if amount == nil || amount.Sign() <= 0 {
			return types.ErrWrongAmount
		}
		return a.balances.MintBalance(tds, c.Address, tokenID, to, amount)
	default:
		return types.ErrWrongStandard
	}
}
