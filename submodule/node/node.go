package node

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/filecoin-project/go-jsonrpc/auth"
	"github.com/gorilla/mux"
	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/build"
	logging "github.com/artwhale/go-artwhale/lib/log"
	"github.com/artwhale/go-artwhale/lib/repo"
	mauth "github.com/artwhale/go-artwhale/submodule/auth"
	mconfig "github.com/artwhale/go-artwhale/submodule/config"
	"github.com/artwhale/go-artwhale/submodule/metrics"
	"github.com/artwhale/go-artwhale/submodule/state"
)

var logger = logging.Logger("basenode")

var _ api.FullNode = (*BaseNode)(nil)

// BaseNode serves the marketplace state over json-rpc.
type BaseNode struct {
	*state.StateMgr

	*mauth.JwtAuth

	*mconfig.ConfigModule

	ctx context.Context

	repo repo.Repo

	shutdownOnce sync.Once
	shutdownChan chan struct{}
}

// Start applies the log config and registers metric views.
func (n *BaseNode) Start(ctx context.Context) error {
	cfg := n.repo.Config()
	if cfg.Log.Level != "" {
		if err := logging.SetLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	logging.SetOutput(cfg.Log.Path, cfg.Log.MaxSize, cfg.Log.MaxBackups, cfg.Log.MaxAge)

	if cfg.Metrics.Enable {
		if err := view.Register(metrics.DefaultViews...); err != nil {
			return xerrors.Errorf("register metric views: %w", err)
		}

		ictx, _ := tag.New(ctx,
			tag.Insert(metrics.Version, build.BuildVersion),
			tag.Insert(metrics.Commit, build.CurrentCommit),
		)
		stats.Record(ictx, metrics.ArtInfo.M(1))
		stats.Record(ctx, metrics.StateHeight.M(int64(n.GetHeight(ctx))))
	}

	logger.Infow("node started", "version", build.UserVersion(), "height", n.GetHeight(ctx), "root", n.GetRoot(ctx))

	return nil
}

func (n *BaseNode) Stop(ctx context.Context) {
	if err := n.repo.Close(); err != nil {
		logger.Errorf("error closing repo: %s", err)
	}

	logger.Info("stopping artwhale :(")
}

func (n *BaseNode) Version(context.Context) (api.APIVersion, error) {
	return api.APIVersion{
		Version:    build.UserVersion(),
		APIVersion: build.APIVersion,
	}, nil
}

// Shutdown asks RunRPCAndWait to stop serving.
func (n *BaseNode) Shutdown(context.Context) error {
	n.shutdownOnce.Do(func() {
		close(n.shutdownChan)
	})
	return nil
}

// RunRPCAndWait serves the api until Shutdown, a termination signal or ctx
// ends it. ready is closed once the api address is published in the repo.
func (n *BaseNode) RunRPCAndWait(ctx context.Context, ready chan interface{}) error {
	cfg := n.repo.Config()
	apiAddr, err := ma.NewMultiaddr(cfg.API.APIAddress)
	if err != nil {
		return err
	}

	// Listen on the configured address in order to bind the port number in case it has
	// been configured as zero (i.e. OS-provided)
	apiListener, err := manet.Listen(apiAddr) //nolint
	if err != nil {
		return err
	}

	netListener := manet.NetListener(apiListener) //nolint

	rpcServer := jsonrpc.NewServer()
	rpcServer.Register(build.MarketNamespace, api.PermissionedFullAPI(api.MetricedFullAPI(n)))

	router := mux.NewRouter()
	router.Handle("/rpc/v0", rpcServer)
	if cfg.Metrics.Enable {
		router.Handle(cfg.Metrics.Path, exporter())
	}

	ah := &auth.Handler{
		Verify: n.AuthVerify,
		Next:   router.ServeHTTP,
	}

	apiserv := &http.Server{
		Handler: ah,
	}

	if err := n.repo.SetAPIAddr(apiListener.Multiaddr().String()); err != nil {
		return err
	}

	// local clients act as admin
	token, err := n.AuthNew(ctx, api.AllPermissions)
	if err != nil {
		return err
	}
	if err := n.repo.SetAPIToken(token); err != nil {
		return err
	}

	var terminate = make(chan os.Signal, 1)
	signal.Notify(terminate, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(terminate)

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := apiserv.Serve(netListener)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		select {
		case <-n.shutdownChan:
			logger.Warn("received shutdown")
		case <-terminate:
			logger.Warn("received shutdown signal")
		case <-ectx.Done():
		}

		logger.Warn("shutdown...")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return apiserv.Shutdown(sctx)
	})

	logger.Infow("api listening", "addr", apiListener.Multiaddr())
	close(ready)

	err = eg.Wait()
	n.Stop(ctx)
	return err
}
