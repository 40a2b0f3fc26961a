package types

import (
	"encoding/hex"
	"errors"

	"github.com/mr-tron/base58/base58"
	"github.com/zeebo/blake3"
)

const MsgIDLen = 32

var ErrMsgCode = errors.New("illegal msg id")

// MsgID is the blake3 digest of a serialized message; also used for state roots.
type MsgID [MsgIDLen]byte

var Undef = MsgID{}

func NewMsgID(data []byte) MsgID {
	return blake3.Sum256(data)
}

// Chain derives the next root from the previous root and an applied message.
func (m MsgID) Chain(next MsgID) MsgID {
	h := blake3.New()
	h.Write(m[:])
	h.Write(next[:])
	var res MsgID
	copy(res[:], h.Sum(nil))
	return res
}

func (m MsgID) Bytes() []byte {
	return m[:]
}

func (m MsgID) String() string {
	return base58.Encode(m[:])
}

func (m MsgID) Hex() string {
	return hex.EncodeToString(m[:])
}

func (m MsgID) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MsgID) UnmarshalText(b []byte) error {
	id, err := FromString(string(b))
	if err != nil {
		return err
	}
	*m = id
	return nil
}

func FromString(s string) (MsgID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Undef, err
	}

	return FromBytes(b)
}

func FromBytes(b []byte) (MsgID, error) {
	if len(b) != MsgIDLen {
		return Undef, ErrMsgCode
	}
	var m MsgID
	copy(m[:], b)
	return m, nil
}
