// Package eip712 hashes and verifies typed mint authorizations. Everything
// here is pure; replay and expiry checks live with the callers.
package eip712

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/types"
)

const (
	DomainType     = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	MintSingleType = "Mint(address target,uint256 tokenId,string uri,uint256 mintPrice,uint256 nonce,uint256 deadline)"
	MintMultiType  = "Mint(address target,uint256 tokenId,uint256 tokenAmount,uint256 mintPrice,uint256 nonce,uint256 deadline)"

	SignatureLen = 65
)

var (
	DomainTypeHash     = crypto.Keccak256Hash([]byte(DomainType))
	MintSingleTypeHash = crypto.Keccak256Hash([]byte(MintSingleType))
	MintMultiTypeHash  = crypto.Keccak256Hash([]byte(MintMultiType))
)

var ErrSignatureLen = xerrors.New("signature must be 65 bytes")

// Domain binds a signature to one collection on one chain.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

func NewDomain(c *types.Collection, chainID *big.Int) Domain {
	return Domain{
		Name:              c.Name,
		Version:           build.MintDomainVersion,
		ChainID:           chainID,
		VerifyingContract: c.Address,
	}
}

func (d Domain) Separator() common.Hash {
	return crypto.Keccak256Hash(
		DomainTypeHash[:],
		crypto.Keccak256([]byte(d.Name)),
		crypto.Keccak256([]byte(d.Version)),
		u256(d.ChainID),
		common.LeftPadBytes(d.VerifyingContract[:], 32),
	)
}

// MintHash is the struct hash of an authorization for the given standard.
func MintHash(std types.Standard, a *types.MintAuthorization) (common.Hash, error) {
	if err := types.CheckU256(a.TokenID, a.Amount, a.MintPrice, a.Nonce, a.Deadline); err != nil {
		return common.Hash{}, err
	}
	switch std {
	case types.SingleOwner:
		return crypto.Keccak256Hash(
			MintSingleTypeHash[:],
			common.LeftPadBytes(a.Target[:], 32),
			u256(a.TokenID),
			crypto.Keccak256([]byte(a.URI)),
			u256(a.MintPrice),
			u256(a.Nonce),
			u256(a.Deadline),
		), nil
	case types.MultiBalance:
		return crypto.Keccak256Hash(
			MintMultiTypeHash[:],
			common.LeftPadBytes(a.Target[:], 32),
			u256(a.TokenID),
			u256(a.Amount),
			u256(a.MintPrice),
			u256(a.Nonce),
			u256(a.Deadline),
		), nil
	default:
		return common.Hash{}, types.ErrWrongStandard
	}
}

// Digest is keccak256(0x1901 || domainSeparator || structHash).
func Digest(d Domain, structHash common.Hash) common.Hash {
	sep := d.Separator()
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, sep[:], structHash[:])
}

func MintDigest(d Domain, std types.Standard, a *types.MintAuthorization) (common.Hash, error) {
	h, err := MintHash(std, a)
	if err != nil {
		return common.Hash{}, err
	}
	return Digest(d, h), nil
}

// Sign returns r || s || v with v in {27, 28}.
func Sign(digest common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(digest[:], key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// Recover accepts v in {0, 1, 27, 28} and rejects malleable signatures.
func Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLen {
		return common.Address{}, ErrSignatureLen
	}

	s := make([]byte, SignatureLen)
	copy(s, sig)
	if s[64] >= 27 {
		s[64] -= 27
	}

	r, sv := new(big.Int).SetBytes(s[:32]), new(big.Int).SetBytes(s[32:64])
	if !crypto.ValidateSignatureValues(s[64], r, sv, true) {
		return common.Address{}, xerrors.New("invalid signature values")
	}

	pub, err := crypto.SigToPub(digest[:], s)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func SignMint(d Domain, std types.Standard, a *types.MintAuthorization, key *ecdsa.PrivateKey) ([]byte, error) {
	digest, err := MintDigest(d, std, a)
	if err != nil {
		return nil, err
	}
	return Sign(digest, key)
}

func RecoverMint(d Domain, std types.Standard, a *types.MintAuthorization, sig []byte) (common.Address, error) {
	digest, err := MintDigest(d, std, a)
	if err != nil {
		return common.Address{}, err
	}
	return Recover(digest, sig)
}

func u256(v *big.Int) []byte {
	if v == nil {
		return make([]byte, 32)
	}
	return math.U256Bytes(new(big.Int).Set(v))
}
