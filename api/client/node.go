package client

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/repo"
)

// GetClientInfo reads the api address and token a daemon left in repoDir.
func GetClientInfo(repoDir string) (string, http.Header, error) {
	maddr, token, err := repo.ReadAPIInfo(repoDir)
	if err != nil {
		return "", nil, xerrors.Errorf("daemon is not running: %w", err)
	}
	return clientInfo(maddr, token)
}

// InfoFromRepo is GetClientInfo for an opened repo.
func InfoFromRepo(r repo.Repo) (string, http.Header, error) {
	maddr, err := r.APIAddr()
	if err != nil {
		return "", nil, xerrors.Errorf("daemon is not running: %w", err)
	}
	token, _ := r.APIToken()
	return clientInfo(maddr, token)
}

func clientInfo(maddr string, token []byte) (string, http.Header, error) {
	headers := http.Header{}
	if len(token) > 0 {
		headers.Add("Authorization", "Bearer "+string(token))
	}

	addr, err := DialURL(maddr)
	if err != nil {
		return "", nil, err
	}
	return addr, headers, nil
}

// DialURL is the websocket rpc url of an api multiaddr.
func DialURL(maddr string) (string, error) {
	apima, err := multiaddr.NewMultiaddr(maddr)
	if err != nil {
		return "", err
	}

	_, addr, err := manet.DialArgs(apima)
	if err != nil {
		return "", err
	}

	return "ws://" + addr + "/rpc/v0", nil
}

func NewFullNodeClient(ctx context.Context, addr string, requestHeader http.Header) (api.FullNode, jsonrpc.ClientCloser, error) {
	var res api.FullNodeStruct
	closer, err := jsonrpc.NewMergeClient(ctx, addr, build.MarketNamespace,
		api.GetInternalStructs(&res), requestHeader)

	return &res, closer, err
}
