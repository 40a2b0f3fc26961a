package cmd

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/artwhale/go-artwhale/lib/types"
)

func TestParseRoyalty(t *testing.T) {
	a := common.HexToAddress("0x1000000000000000000000000000000000000001")
	b := common.HexToAddress("0x2000000000000000000000000000000000000002")

	rs, err := parseRoyalty("")
	require.NoError(t, err)
	require.NotNil(t, rs)
	require.Len(t, rs, 0)
	require.Equal(t, "none", formatRoyalty(rs))

	rs, err = parseRoyalty(a.Hex() + ":500, " + b.Hex() + ":250")
	require.NoError(t, err)
	require.Equal(t, types.RoyaltySet{{Receiver: a, Fraction: 500}, {Receiver: b, Fraction: 250}}, rs)

	_, err = parseRoyalty(a.Hex())
	require.Error(t, err)
	_, err = parseRoyalty("nope:1")
	require.Error(t, err)
	_, err = parseRoyalty(a.Hex() + ":6000," + b.Hex() + ":4000")
	require.ErrorIs(t, err, types.ErrWrongSum)
}

func TestParseBig(t *testing.T) {
	v, err := parseBig("1000")
	require.NoError(t, err)
	require.Equal(t, int64(1000), v.Int64())

	v, err = parseBig("0x10")
	require.NoError(t, err)
	require.Equal(t, int64(16), v.Int64())

	_, err = parseBig("-1")
	require.Error(t, err)
	_, err = parseBig("ten")
	require.Error(t, err)
}
