package types

import (
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"
)

// Standard is the transfer semantics of an item contract.
type Standard uint8

const (
	StandardNone Standard = iota
	SingleOwner
	MultiBalance
)

// NewStandard rejects tags outside the enumeration.
func NewStandard(v uint8) (Standard, error) {
	if v > uint8(MultiBalance) {
		return StandardNone, ErrWrongStandard
	}
	return Standard(v), nil
}

// Tradable reports whether orders may use the standard.
func (s Standard) Tradable() bool {
	return s == SingleOwner || s == MultiBalance
}

func (s Standard) String() string {
	switch s {
	case SingleOwner:
		return "SINGLE_OWNER"
	case MultiBalance:
		return "MULTI_BALANCE"
	default:
		return "NONE"
	}
}

func ParseStandard(s string) (Standard, error) {
	switch s {
	case "NONE", "none":
		return StandardNone, nil
	case "SINGLE_OWNER", "single", "erc721":
		return SingleOwner, nil
	case "MULTI_BALANCE", "multi", "erc1155":
		return MultiBalance, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return StandardNone, ErrWrongStandard
	}
	return NewStandard(uint8(v))
}

func (s Standard) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Standard) UnmarshalText(b []byte) (err error) {
	*s, err = ParseStandard(string(b))
	return err
}

func (s *Standard) UnmarshalCBOR(b []byte) error {
	var v uint8
	if err := cbor.Unmarshal(b, &v); err != nil {
		return err
	}
	ns, err := NewStandard(v)
	if err != nil {
		return err
	}
	*s = ns
	return nil
}

// OrderStatus; StatusAny only appears in queries.
type OrderStatus uint8

const (
	StatusNull OrderStatus = iota
	StatusOpen
	StatusCancelled
	StatusExecuted
	StatusAny
)

func NewOrderStatus(v uint8) (OrderStatus, error) {
	if v > uint8(StatusAny) {
		return StatusNull, xerrors.Errorf("invalid order status %d", v)
	}
	return OrderStatus(v), nil
}

// Terminal statuses never change again.
func (s OrderStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusExecuted
}

func (s OrderStatus) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusCancelled:
		return "CANCELLED"
	case StatusExecuted:
		return "EXECUTED"
	case StatusAny:
		return "ANY"
	default:
		return "NULL"
	}
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "NULL", "null":
		return StatusNull, nil
	case "OPEN", "open":
		return StatusOpen, nil
	case "CANCELLED", "cancelled":
		return StatusCancelled, nil
	case "EXECUTED", "executed":
		return StatusExecuted, nil
	case "ANY", "any":
		return StatusAny, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return StatusNull, xerrors.Errorf("invalid order status %q", s)
	}
	return NewOrderStatus(uint8(v))
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(b []byte) (err error) {
	*s, err = ParseOrderStatus(string(b))
	return err
}

func (s *OrderStatus) UnmarshalCBOR(b []byte) error {
	var v uint8
	if err := cbor.Unmarshal(b, &v); err != nil {
		return err
	}
	ns, err := NewOrderStatus(v)
	if err != nil {
		return err
	}
	*s = ns
	return nil
}

// OrderKind is bookkeeping only; settlement does not depend on it.
type OrderKind uint8

const (
	PeerToPeer OrderKind = iota
	Authority
)

func NewOrderKind(v uint8) (OrderKind, error) {
	if v > uint8(Authority) {
		return PeerToPeer, xerrors.Errorf("invalid order kind %d", v)
	}
	return OrderKind(v), nil
}

func (k OrderKind) String() string {
	if k == Authority {
		return "AUTHORITY"
	}
	return "PEER_TO_PEER"
}

func ParseOrderKind(s string) (OrderKind, error) {
	switch s {
	case "PEER_TO_PEER", "p2p":
		return PeerToPeer, nil
	case "AUTHORITY", "authority":
		return Authority, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return PeerToPeer, xerrors.Errorf("invalid order kind %q", s)
	}
	return NewOrderKind(uint8(v))
}

func (k OrderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OrderKind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseOrderKind(string(b))
	return err
}

func (k *OrderKind) UnmarshalCBOR(b []byte) error {
	var v uint8
	if err := cbor.Unmarshal(b, &v); err != nil {
		return err
	}
	nk, err := NewOrderKind(v)
	if err != nil {
		return err
	}
	*k = nk
	return nil
}
