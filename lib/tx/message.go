package tx

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/types"
)

type MsgType = uint32

const MsgMaxLen = 1<<16 - 1

var (
	ErrMsgLen      = errors.New("message length too long")
	ErrMsgLenShort = errors.New("message length too short")
)

const (
	DataTxErr MsgType = iota

	// collections; by collection owner unless noted
	CreateCollection // by market owner
	SetSigner
	SetOperator

	// royalty; by collection owner
	SetDefaultRoyalty
	SetTokenRoyalty
	ResetTokenRoyalty

	// registry; by market owner
	AddSettlementToken
	RemoveSettlementToken
	AddWhitelist
	RemoveWhitelist
	SetTradeFeePercent
	Withdraw

	// orders
	CreateOrder  // by seller
	CancelOrder  // by seller
	ExecuteOrder // by buyer

	// mint
	Mint         // by anyone holding an authorization
	OperatorMint // by collection operator

	// ledgers
	SetApprovalForAll
	Approve
	Transfer
	CurrencyMint // by market owner

	msgTypeEnd
)

var methodNames = map[MsgType]string{
	CreateCollection:      "CreateCollection",
	SetSigner:             "SetSigner",
	SetOperator:           "SetOperator",
	SetDefaultRoyalty:     "SetDefaultRoyalty",
	SetTokenRoyalty:       "SetTokenRoyalty",
	ResetTokenRoyalty:     "ResetTokenRoyalty",
	AddSettlementToken:    "AddSettlementToken",
	RemoveSettlementToken: "RemoveSettlementToken",
	AddWhitelist:          "AddWhitelist",
	RemoveWhitelist:       "RemoveWhitelist",
	SetTradeFeePercent:    "SetTradeFeePercent",
	Withdraw:              "Withdraw",
	CreateOrder:           "CreateOrder",
	CancelOrder:           "CancelOrder",
	ExecuteOrder:          "ExecuteOrder",
	Mint:                  "Mint",
	OperatorMint:          "OperatorMint",
	SetApprovalForAll:     "SetApprovalForAll",
	Approve:               "Approve",
	Transfer:              "Transfer",
	CurrencyMint:          "CurrencyMint",
}

func MethodName(m MsgType) string {
	if n, ok := methodNames[m]; ok {
		return n
	}
	return "Unknown"
}

func ValidMethod(m MsgType) bool {
	return m > DataTxErr && m < msgTypeEnd
}

// Message is one state transition requested by From.
type Message struct {
	Version uint32

	From  common.Address
	Nonce uint64
	Value *big.Int // native payment attached

	Method MsgType
	Params []byte // decode according to method
}

func NewMessage(from common.Address, nonce uint64, method MsgType, params interface{}) (*Message, error) {
	pb, err := cbor.Marshal(params)
	if err != nil {
		return nil, err
	}
	return &Message{
		Version: build.MsgVersion,
		From:    from,
		Nonce:   nonce,
		Value:   big.NewInt(0),
		Method:  method,
		Params:  pb,
	}, nil
}

func (m *Message) Serialize() ([]byte, error) {
	res, err := cbor.Marshal(m)
	if err != nil {
		return nil, err
	}

	if len(res) > int(MsgMaxLen) {
		return nil, ErrMsgLen
	}
	return res, nil
}

func (m *Message) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, m)
}

// SigHash is the digest signed by From.
func (m *Message) SigHash() (common.Hash, error) {
	res, err := m.Serialize()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(res), nil
}

// DecodeParams fills v from Params.
func (m *Message) DecodeParams(v interface{}) error {
	if err := cbor.Unmarshal(m.Params, v); err != nil {
		return xerrors.Errorf("%w: %s", types.ErrMsgParams, err)
	}
	return nil
}

type SignedMessage struct {
	Message
	Signature []byte // 65 bytes, secp256k1 over SigHash
}

func Sign(m *Message, key *ecdsa.PrivateKey) (*SignedMessage, error) {
	h, err := m.SigHash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(h[:], key)
	if err != nil {
		return nil, err
	}
	return &SignedMessage{Message: *m, Signature: sig}, nil
}

// Verify checks the signature recovers From.
func (sm *SignedMessage) Verify() error {
	if len(sm.Signature) != crypto.SignatureLength {
		return types.ErrMsgSignature
	}
	h, err := sm.SigHash()
	if err != nil {
		return err
	}
	pub, err := crypto.SigToPub(h[:], sm.Signature)
	if err != nil {
		return types.ErrMsgSignature
	}
	if crypto.PubkeyToAddress(*pub) != sm.From {
		return types.ErrMsgSignature
	}
	return nil
}

func (sm *SignedMessage) Serialize() ([]byte, error) {
	return cbor.Marshal(sm)
}

func (sm *SignedMessage) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, sm)
}

// ID of a signed message; the key of its receipt.
func (sm *SignedMessage) ID() (types.MsgID, error) {
	b, err := sm.Serialize()
	if err != nil {
		return types.Undef, err
	}
	return types.NewMsgID(b), nil
}
