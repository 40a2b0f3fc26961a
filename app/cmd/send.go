package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/howeyc/gopass"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/api"
	"github.com/artwhale/go-artwhale/lib/repo"
	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/submodule/wallet"
)

// signing flags shared by every command that pushes a message
var sendFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  fromKwd,
		Usage: "sender address, defaults to wallet.defaultAddress",
	},
	&cli.StringFlag{
		Name:  pwKwd,
		Usage: "keystore password, prompted when unset",
	},
}

func withSendFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, sendFlags...)
}

// sender signs messages with a local key and pushes them to the daemon.
type sender struct {
	api    api.FullNode
	closer func()
	w      *wallet.Wallet
	from   common.Address
}

func getPassword(cctx *cli.Context, prompt string) (string, error) {
	if cctx.IsSet(pwKwd) {
		return cctx.String(pwKwd), nil
	}
	pw, err := gopass.GetPasswdPrompt(prompt, true, os.Stdin, os.Stdout)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func openWallet(cctx *cli.Context) (*wallet.Wallet, error) {
	kp, err := repo.KeystorePath(cctx.String(FlagNodeRepo))
	if err != nil {
		return nil, err
	}
	return wallet.New(kp)
}

// unlockSigner opens the keystore and unlocks the address in the from flag,
// or the configured default.
func unlockSigner(cctx *cli.Context) (*wallet.Wallet, common.Address, error) {
	from, err := addressFlag(cctx, fromKwd)
	if err != nil {
		return nil, from, err
	}
	if from == (common.Address{}) {
		cfg, err := repo.ReadConfig(cctx.String(FlagNodeRepo))
		if err != nil {
			return nil, from, err
		}
		if cfg.Wallet.DefaultAddress == "" {
			return nil, from, xerrors.New("no --from and no default wallet address")
		}
		from, err = parseAddress(cfg.Wallet.DefaultAddress)
		if err != nil {
			return nil, from, err
		}
	}

	w, err := openWallet(cctx)
	if err != nil {
		return nil, from, err
	}
	if !w.Has(from) {
		return nil, from, xerrors.Errorf("%s: %w", from, wallet.ErrNoKey)
	}

	pw, err := getPassword(cctx, fmt.Sprintf("Password for %s: ", from))
	if err != nil {
		return nil, from, err
	}
	if err := w.Unlock(from, pw); err != nil {
		return nil, from, err
	}
	return w, from, nil
}

func newSender(cctx *cli.Context) (*sender, error) {
	w, from, err := unlockSigner(cctx)
	if err != nil {
		return nil, err
	}

	napi, closer, err := getAPI(cctx)
	if err != nil {
		return nil, err
	}

	return &sender{
		api:    napi,
		closer: closer,
		w:      w,
		from:   from,
	}, nil
}

func (s *sender) Close() {
	s.w.Lock(s.from)
	s.closer()
}

// push signs one message at the sender's next nonce and applies it.
func (s *sender) push(cctx *cli.Context, method tx.MsgType, params interface{}, value *big.Int) (*tx.Receipt, error) {
	nonce, err := s.api.GetNonce(cctx.Context, s.from)
	if err != nil {
		return nil, err
	}

	m, err := tx.NewMessage(s.from, nonce, method, params)
	if err != nil {
		return nil, err
	}
	if value != nil {
		m.Value = value
	}

	sm, err := s.w.SignMessage(m)
	if err != nil {
		return nil, err
	}

	r, err := s.api.PushMessage(cctx.Context, sm)
	if err != nil {
		return nil, xerrors.Errorf("%s failed: %w", tx.MethodName(method), err)
	}

	logger.Debugw("message applied", "method", tx.MethodName(method), "from", s.from, "nonce", nonce, "id", r.ID)
	fmt.Printf("%s applied at height %d, msg: %s\n", tx.MethodName(method), r.Height, r.ID)
	return r, nil
}

// sendAction wraps a command that pushes exactly one message.
func sendAction(method tx.MsgType, build func(cctx *cli.Context) (interface{}, error)) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		params, err := build(cctx)
		if err != nil {
			return err
		}

		s, err := newSender(cctx)
		if err != nil {
			return err
		}
		defer s.Close()

		_, err = s.push(cctx, method, params, nil)
		return err
	}
}
