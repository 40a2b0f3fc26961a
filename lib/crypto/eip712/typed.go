package eip712

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/artwhale/go-artwhale/lib/types"
)

var domainFields = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// TypedData renders an authorization in the json shape wallets sign with
// eth_signTypedData_v4.
func TypedData(d Domain, std types.Standard, a *types.MintAuthorization) (apitypes.TypedData, error) {
	if err := types.CheckU256(a.TokenID, a.Amount, a.MintPrice, a.Nonce, a.Deadline); err != nil {
		return apitypes.TypedData{}, err
	}
	msg := apitypes.TypedDataMessage{
		"target":    a.Target.Hex(),
		"tokenId":   orZero(a.TokenID),
		"mintPrice": orZero(a.MintPrice),
		"nonce":     orZero(a.Nonce),
		"deadline":  orZero(a.Deadline),
	}

	var mint []apitypes.Type
	switch std {
	case types.SingleOwner:
		msg["uri"] = a.URI
		mint = []apitypes.Type{
			{Name: "target", Type: "address"},
			{Name: "tokenId", Type: "uint256"},
			{Name: "uri", Type: "string"},
			{Name: "mintPrice", Type: "uint256"},
			{Name: "nonce", Type: "uint256"},
			{Name: "deadline", Type: "uint256"},
		}
	case types.MultiBalance:
		msg["tokenAmount"] = orZero(a.Amount)
		mint = []apitypes.Type{
			{Name: "target", Type: "address"},
			{Name: "tokenId", Type: "uint256"},
			{Name: "tokenAmount", Type: "uint256"},
			{Name: "mintPrice", Type: "uint256"},
			{Name: "nonce", Type: "uint256"},
			{Name: "deadline", Type: "uint256"},
		}
	default:
		return apitypes.TypedData{}, types.ErrWrongStandard
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainFields,
			"Mint":         mint,
		},
		PrimaryType: "Mint",
		Domain: apitypes.TypedDataDomain{
			Name:              d.Name,
			Version:           d.Version,
			ChainId:           (*math.HexOrDecimal256)(orZero(d.ChainID)),
			VerifyingContract: d.VerifyingContract.Hex(),
		},
		Message: msg,
	}, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
