package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

var (
	r1 = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	r2 = common.HexToAddress("0x00000000000000000000000000000000000000a2")
)

func TestCheckRoyalty(t *testing.T) {
	require.NoError(t, CheckRoyalty(nil))
	require.NoError(t, CheckRoyalty(RoyaltySet{{r1, 1000}, {r2, 8999}}))

	require.ErrorIs(t, CheckRoyalty(RoyaltySet{{common.Address{}, 10}}), ErrWrongReceiver)
	require.ErrorIs(t, CheckRoyalty(RoyaltySet{{r1, 10000}}), ErrWrongFraction)
	require.ErrorIs(t, CheckRoyalty(RoyaltySet{{r1, 5000}, {r2, 5000}}), ErrWrongSum)
}

func TestCheckU256(t *testing.T) {
	top := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, CheckU256(nil, big.NewInt(0), top))
	require.ErrorIs(t, CheckU256(big.NewInt(1), new(big.Int).Add(top, big.NewInt(1))), ErrOutOfRange)
	require.ErrorIs(t, CheckU256(big.NewInt(-1)), ErrOutOfRange)
}

func TestRoyaltySplit(t *testing.T) {
	rs := RoyaltySet{{r1, 1000}, {r2, 333}}

	s := rs.Split(big.NewInt(100))
	require.Equal(t, []common.Address{r1, r2}, s.Receivers)
	require.Equal(t, int64(10), s.Amounts[0].Int64())
	require.Equal(t, int64(3), s.Amounts[1].Int64())
	require.Equal(t, int64(13), s.Total.Int64())

	d := rs.Split(big.NewInt(20000))
	require.Equal(t, int64(2000), d.Amounts[0].Int64())
	require.Equal(t, int64(666), d.Amounts[1].Int64())

	empty := RoyaltySet{}.Split(big.NewInt(100))
	require.Empty(t, empty.Receivers)
	require.Zero(t, empty.Total.Sign())
}

func TestEnumConstruction(t *testing.T) {
	_, err := NewStandard(3)
	require.ErrorIs(t, err, ErrWrongStandard)

	st, err := ParseStandard("erc1155")
	require.NoError(t, err)
	require.Equal(t, MultiBalance, st)
	require.False(t, StandardNone.Tradable())

	_, err = NewOrderStatus(5)
	require.Error(t, err)
	require.True(t, StatusExecuted.Terminal())
	require.False(t, StatusOpen.Terminal())

	var bad Standard
	b, err := cbor.Marshal(uint8(7))
	require.NoError(t, err)
	require.Error(t, cbor.Unmarshal(b, &bad))
}

func TestOrderCodec(t *testing.T) {
	o := &Order{
		ID:       3,
		Standard: SingleOwner,
		Contract: r1,
		ItemID:   big.NewInt(1),
		Quantity: big.NewInt(1),
		Currency: r2,
		Price:    big.NewInt(1000),
		Status:   StatusOpen,
		Seller:   r1,
		Kind:     Authority,
	}

	b, err := o.Serialize()
	require.NoError(t, err)

	no := new(Order)
	require.NoError(t, no.Deserialize(b))
	require.Equal(t, o.Standard, no.Standard)
	require.Equal(t, o.Kind, no.Kind)
	require.Equal(t, 0, o.Price.Cmp(no.Price))

	jb, err := json.Marshal(o)
	require.NoError(t, err)
	require.Contains(t, string(jb), `"Standard":"SINGLE_OWNER"`)

	jo := new(Order)
	require.NoError(t, json.Unmarshal(jb, jo))
	require.Equal(t, StatusOpen, jo.Status)
}

func TestErrorKind(t *testing.T) {
	err := xerrors.Errorf("create order: %w", ErrNotRegistered)
	require.Equal(t, KindValidation, KindOf(err))
	require.Equal(t, "create order: nft not registered", err.Error())
	require.Equal(t, KindUnknown, KindOf(xerrors.New("other")))
}

func TestMsgIDChain(t *testing.T) {
	a := NewMsgID([]byte("a"))
	b := NewMsgID([]byte("b"))
	require.NotEqual(t, Undef.Chain(a), Undef.Chain(b))
	require.Equal(t, Undef.Chain(a), Undef.Chain(a))

	id, err := FromString(a.String())
	require.NoError(t, err)
	require.Equal(t, a, id)
}
