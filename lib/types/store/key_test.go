package store

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNewKeyOrder(t *testing.T) {
	k9 := NewKey("order", uint64(9))
	k10 := NewKey("order", uint64(10))
	require.Equal(t, -1, bytes.Compare(k9, k10))

	b1 := NewKey("token", big.NewInt(255))
	b2 := NewKey("token", big.NewInt(256))
	require.Equal(t, -1, bytes.Compare(b1, b2))
}

func TestNewKeyParts(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000Ab")
	k := NewKey("seller", addr, uint8(1), uint64(3))
	require.Equal(t, "seller/00000000000000000000000000000000000000ab/001/00000000000000000003", string(k))

	p := NewPrefix("seller", addr)
	require.True(t, bytes.HasPrefix(k, p))
}
