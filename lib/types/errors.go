package types

import (
	"errors"
)

type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindAuthorization
	KindState
	KindCollaborator
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// Error is a rejected operation. Reason is the stable message callers match on.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func newError(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// order engine
var (
	ErrWrongStandard      = newError(KindValidation, "wrong nft standart")
	ErrZeroContract       = newError(KindValidation, "zero contract address")
	ErrNotRegistered      = newError(KindValidation, "nft not registered")
	ErrWrongAmount        = newError(KindValidation, "wrong token amount")
	ErrZeroCurrency       = newError(KindValidation, "zero trade token address")
	ErrCurrencyUnknown    = newError(KindValidation, "settlement token not registered")
	ErrWrongPrice         = newError(KindValidation, "wrong price")
	ErrWrongPercent       = newError(KindValidation, "wrong percent value")
	ErrOrderNotExist      = newError(KindState, "order does not exist")
	ErrNotSeller          = newError(KindAuthorization, "sender is not the seller")
	ErrOrderNotOpen       = newError(KindState, "only for open orders")
	ErrSellerBuy          = newError(KindAuthorization, "not for seller")
	ErrSettlementOverflow = newError(KindState, "fee and royalty exceed price")
	ErrWrongPage          = newError(KindValidation, "wrong page limit")
	ErrOutOfRange         = newError(KindValidation, "value out of uint256 range")
)

// access
var (
	ErrNotOwner    = newError(KindAuthorization, "caller is not the owner")
	ErrNotOperator = newError(KindAuthorization, "caller is not the operator")
)

// royalty
var (
	ErrWrongReceiver = newError(KindValidation, "wrong receiver")
	ErrWrongFraction = newError(KindValidation, "wrong royalty fraction")
	ErrWrongSum      = newError(KindValidation, "wrong royalty sum")
)

// mint
var (
	ErrNonceUsed        = newError(KindState, "nonce already used")
	ErrExpiredDeadline  = newError(KindState, "expired deadline")
	ErrWrongMintPrice   = newError(KindValidation, "wrong mint price")
	ErrInvalidSignature = newError(KindAuthorization, "invalid signature")
)

// collections and ledgers
var (
	ErrCollectionNotExist = newError(KindState, "collection does not exist")
	ErrTokenMinted        = newError(KindCollaborator, "token already minted")
	ErrTokenNotExist      = newError(KindCollaborator, "token does not exist")
	ErrWrongFrom          = newError(KindCollaborator, "transfer from incorrect owner")
	ErrNotApproved        = newError(KindCollaborator, "caller is not token owner or approved")
	ErrZeroReceiver       = newError(KindCollaborator, "transfer to the zero address")
	ErrLowBalance         = newError(KindCollaborator, "insufficient balance for transfer")
	ErrLowAllowance       = newError(KindCollaborator, "insufficient allowance")
)

// messages
var (
	ErrMsgSignature = newError(KindAuthorization, "message signature does not match sender")
	ErrMsgNonce     = newError(KindState, "wrong message nonce")
	ErrMsgMethod    = newError(KindValidation, "unknown message method")
	ErrMsgParams    = newError(KindValidation, "malformed message params")
)
