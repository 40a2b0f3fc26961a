package node

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/artwhale/go-artwhale/config"
	"github.com/artwhale/go-artwhale/lib/repo"
	"github.com/artwhale/go-artwhale/submodule/state"
)

// OptionsFromRepo takes a repo and returns options that configure a node
// to use the given repo.
func OptionsFromRepo(r repo.Repo) ([]BuilderOpt, error) {
	opts := []BuilderOpt{SetRepo(r)}

	g, err := GenesisFromConfig(r.Config().Market)
	if err != nil {
		return nil, err
	}
	if g != nil {
		opts = append(opts, SetGenesis(g))
	}

	return opts, nil
}

// GenesisFromConfig returns nil when no market owner is configured.
func GenesisFromConfig(mc config.MarketConfig) (*state.Genesis, error) {
	if mc.Owner == "" {
		return nil, nil
	}
	if !common.IsHexAddress(mc.Owner) {
		return nil, errors.Errorf("market owner %q is not an address", mc.Owner)
	}

	g := &state.Genesis{
		Owner:           common.HexToAddress(mc.Owner),
		TradeFeePercent: mc.TradeFeePercent,
	}
	if mc.Treasury != "" {
		if !common.IsHexAddress(mc.Treasury) {
			return nil, errors.Errorf("market treasury %q is not an address", mc.Treasury)
		}
		g.Treasury = common.HexToAddress(mc.Treasury)
	}
	if mc.ChainID > 0 {
		g.ChainID = big.NewInt(mc.ChainID)
	}
	return g, nil
}
