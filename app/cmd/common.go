package cmd

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/filecoin-project/go-jsonrpc"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/api/client"
	"github.com/artwhale/go-artwhale/build"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/types"
)

var logger = logging.Logger("main")

const (
	FlagNodeRepo = "repo"

	fromKwd     = "from"
	pwKwd       = "password"
	contractKwd = "contract"
	itemKwd     = "item"
	currencyKwd = "currency"
)

var CommonCmd []*cli.Command

func init() {
	CommonCmd = []*cli.Command{
		InitCmd,
		DaemonCmd,
		AuthCmd,
		WalletCmd,
		ConfigCmd,
		InfoCmd,
		CollectionCmd,
		RoyaltyCmd,
		RegistryCmd,
		OrderCmd,
		MintCmd,
		LedgerCmd,
		WithdrawCmd,
	}
}

// getAPI connects to the daemon serving the repo.
func getAPI(cctx *cli.Context) (api.FullNode, jsonrpc.ClientCloser, error) {
	addr, headers, err := client.GetClientInfo(cctx.String(FlagNodeRepo))
	if err != nil {
		return nil, nil, err
	}

	return client.NewFullNodeClient(cctx.Context, addr, headers)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, xerrors.Errorf("%q is not an address", s)
	}
	return common.HexToAddress(s), nil
}

// addressFlag returns the zero address when the flag is unset.
func addressFlag(cctx *cli.Context, name string) (common.Address, error) {
	s := cctx.String(name)
	if s == "" {
		return common.Address{}, nil
	}
	return parseAddress(s)
}

func requiredAddress(cctx *cli.Context, name string) (common.Address, error) {
	if cctx.String(name) == "" {
		return common.Address{}, xerrors.Errorf("--%s is required", name)
	}
	return parseAddress(cctx.String(name))
}

// parseBig accepts decimal or 0x prefixed hex.
func parseBig(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return nil, xerrors.Errorf("%q is not a uint256", s)
	}
	return v, nil
}

func bigFlag(cctx *cli.Context, name string) (*big.Int, error) {
	s := cctx.String(name)
	if s == "" {
		return nil, xerrors.Errorf("--%s is required", name)
	}
	return parseBig(s)
}

// parseRoyalty reads "receiver:fraction,..." with fractions in basis
// points of build.RoyaltyDenominator. An empty string is the empty set.
func parseRoyalty(s string) (types.RoyaltySet, error) {
	rs := types.RoyaltySet{}
	s = strings.TrimSpace(s)
	if s == "" {
		return rs, nil
	}

	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			return nil, xerrors.Errorf("royalty entry %q is not receiver:fraction", part)
		}
		recv, err := parseAddress(kv[0])
		if err != nil {
			return nil, err
		}
		frac, err := strconv.ParseUint(kv[1], 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("royalty fraction %q: %w", kv[1], err)
		}
		rs = append(rs, types.RoyaltyEntry{Receiver: recv, Fraction: frac})
	}

	return rs, types.CheckRoyalty(rs)
}

func formatRoyalty(rs types.RoyaltySet) string {
	if len(rs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(rs))
	for _, e := range rs {
		parts = append(parts, fmt.Sprintf("%s:%d/%d", e.Receiver, e.Fraction, build.RoyaltyDenominator))
	}
	return strings.Join(parts, ", ")
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
