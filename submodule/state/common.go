package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
)

var logger = logging.Logger("state")

var beginRoot = types.NewMsgID([]byte("artwhale state"))

var ErrValue = xerrors.New("method does not accept native value")

// Genesis seeds an empty state.
type Genesis struct {
	Owner           common.Address
	Treasury        common.Address // zero keeps fees with the market account
	ChainID         *big.Int
	TradeFeePercent uint64
}

func (g *Genesis) chainID() *big.Int {
	if g.ChainID == nil || g.ChainID.Sign() <= 0 {
		return build.DefaultChainID
	}
	return g.ChainID
}
