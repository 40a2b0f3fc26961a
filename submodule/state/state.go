package state

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/tx"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
	"github.com/artwhale/go-artwhale/submodule/connect/ledger"
	"github.com/artwhale/go-artwhale/submodule/control"
	"github.com/artwhale/go-artwhale/submodule/market"
	"github.com/artwhale/go-artwhale/submodule/metrics"
	"github.com/artwhale/go-artwhale/submodule/mint"
	"github.com/artwhale/go-artwhale/submodule/registry"
	"github.com/artwhale/go-artwhale/submodule/royalty"
)

// StateMgr applies signed messages one at a time. Each message runs in its
// own badger transaction: committed when it applies, discarded otherwise.
//
// key: state/genesis; value: cbor genesis
// key: state/root; value: root
// key: state/height; value: applied message count
// key: state/nonce/address; value: next message nonce
type StateMgr struct {
	sync.RWMutex

	ds  store.KVStore
	txs *tx.TxStoreImpl

	now func() time.Time

	genesis *Genesis
	root    types.MsgID
	height  uint64

	gate    *control.MarketGate
	items   *ledger.ItemLedger
	cur     *ledger.CurrencyLedger
	royalty *royalty.Ledger
	reg     *registry.Registry
	minter  *mint.Authorizer
	market  *market.Engine
}

type genesisStored struct {
	Owner           common.Address
	Treasury        common.Address
	ChainID         *big.Int
	TradeFeePercent uint64
}

// NewStateMgr loads the state in ds, or seeds it from g when ds is empty.
func NewStateMgr(ds store.KVStore, g *Genesis) (*StateMgr, error) {
	txs, err := tx.NewTxStore(ds)
	if err != nil {
		return nil, err
	}

	s := &StateMgr{
		ds:    ds,
		txs:   txs,
		now:   time.Now,
		root:  beginRoot,
		gate:  control.NewMarketGate(),
		items: ledger.NewItemLedger(),
		cur:   ledger.NewCurrencyLedger(),
	}

	gen, err := s.loadGenesis()
	if err != nil {
		return nil, err
	}
	if gen == nil {
		if g == nil {
			return nil, xerrors.New("empty state needs a genesis")
		}
		if err := s.initGenesis(g); err != nil {
			return nil, xerrors.Errorf("init genesis: %w", err)
		}
		gen = g
	} else if g != nil && g.Owner != gen.Owner {
		logger.Warnw("genesis in config differs from state, using state", "config", g.Owner, "state", gen.Owner)
	}
	s.genesis = gen

	if err := s.build(); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	logger.Infow("state loaded", "root", s.root, "height", s.height, "owner", gen.Owner)

	return s, nil
}

func (s *StateMgr) build() error {
	s.minter = mint.New(s.genesis.chainID(), s.items, s.items, s.cur)
	s.royalty = royalty.New(control.NewCollectionGate(s.minter))
	s.reg = registry.New(s.gate)

	m, err := market.New(market.Config{
		Self:     build.MarketAccount,
		Treasury: s.genesis.Treasury,
		Registry: s.reg,
		Royalty:  s.royalty,
		Owners:   s.items,
		Balances: s.items,
		Payment:  s.cur,
		Gate:     s.gate,
	})
	if err != nil {
		return err
	}
	s.market = m
	return nil
}

func (s *StateMgr) loadGenesis() (*Genesis, error) {
	val, err := s.ds.Get(store.NewKey("state", "genesis"))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	gs := new(genesisStored)
	if err := cbor.Unmarshal(val, gs); err != nil {
		return nil, xerrors.Errorf("decode genesis: %w", err)
	}
	return &Genesis{
		Owner:           gs.Owner,
		Treasury:        gs.Treasury,
		ChainID:         gs.ChainID,
		TradeFeePercent: gs.TradeFeePercent,
	}, nil
}

func (s *StateMgr) initGenesis(g *Genesis) error {
	txn, err := s.ds.NewTxnStore(true)
	if err != nil {
		return err
	}
	defer txn.Discard()

	if err := s.gate.Init(txn, g.Owner); err != nil {
		return err
	}
	if err := registry.New(s.gate).InitFee(txn, g.TradeFeePercent); err != nil {
		return err
	}

	gb, err := cbor.Marshal(&genesisStored{
		Owner:           g.Owner,
		Treasury:        g.Treasury,
		ChainID:         g.chainID(),
		TradeFeePercent: g.TradeFeePercent,
	})
	if err != nil {
		return err
	}
	if err := txn.Put(store.NewKey("state", "genesis"), gb); err != nil {
		return err
	}
	if err := txn.Put(store.NewKey("state", "root"), beginRoot.Bytes()); err != nil {
		return err
	}

	logger.Infow("genesis", "owner", g.Owner, "fee", g.TradeFeePercent, "chain", g.chainID())

	return txn.Commit()
}

func (s *StateMgr) load() error {
	val, err := s.ds.Get(store.NewKey("state", "root"))
	if err != nil {
		return xerrors.Errorf("load root: %w", err)
	}
	rt, err := types.FromBytes(val)
	if err != nil {
		return err
	}
	s.root = rt

	val, err = s.ds.Get(store.NewKey("state", "height"))
	if err == nil && len(val) == 8 {
		s.height = binary.BigEndian.Uint64(val)
	}
	return nil
}

// SetClock replaces the time source used for mint deadlines.
func (s *StateMgr) SetClock(now func() time.Time) {
	s.Lock()
	defer s.Unlock()
	s.now = now
}

func nonceKey(addr common.Address) []byte {
	return store.NewKey("state", "nonce", addr)
}

func (s *StateMgr) getNonce(st store.Store, addr common.Address) (uint64, error) {
	val, err := st.Get(nonceKey(addr))
	if err != nil {
		if xerrors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if len(val) != 8 {
		return 0, xerrors.Errorf("wrong nonce length %d", len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

func putUint(tds store.Store, key []byte, v uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return tds.Put(key, buf)
}

// ApplyMsg verifies and applies one signed message. On any error nothing of
// the message is kept, its nonce included.
func (s *StateMgr) ApplyMsg(ctx context.Context, sm *tx.SignedMessage) (*tx.Receipt, error) {
	if sm == nil {
		return nil, xerrors.New("nil message")
	}

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.MsgMethod, tx.MethodName(sm.Method)))
	stats.Record(mctx, metrics.TxMessageReceived.M(1))
	defer metrics.Timer(mctx, metrics.TxMessageApply)()

	r, err := s.applyMsg(sm)
	if err != nil {
		metrics.Counter(mctx, metrics.TxMessageFailure, tag.Upsert(metrics.ErrKind, types.KindOf(err).String()))
		logger.Debugw("message rejected", "from", sm.From, "nonce", sm.Nonce, "method", tx.MethodName(sm.Method), "err", err)
		return nil, err
	}

	metrics.Counter(mctx, metrics.TxMessageSuccess)
	switch sm.Method {
	case tx.CreateOrder:
		metrics.Counter(ctx, metrics.OrderCreated)
	case tx.CancelOrder:
		metrics.Counter(ctx, metrics.OrderCanceled)
	case tx.ExecuteOrder:
		metrics.Counter(ctx, metrics.OrderExecuted)
	case tx.Mint, tx.OperatorMint:
		metrics.Counter(ctx, metrics.ItemMinted)
	}
	stats.Record(ctx, metrics.StateHeight.M(int64(r.Height+1)))

	return r, nil
}

func (s *StateMgr) applyMsg(sm *tx.SignedMessage) (*tx.Receipt, error) {
	if !tx.ValidMethod(sm.Method) {
		return nil, xerrors.Errorf("%w: %d", types.ErrMsgMethod, sm.Method)
	}
	if sm.Value != nil && sm.Value.Sign() < 0 {
		return nil, xerrors.Errorf("negative value %d", sm.Value)
	}
	if err := sm.Verify(); err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	txn, err := s.ds.NewTxnStore(true)
	if err != nil {
		return nil, err
	}
	defer txn.Discard()

	nonce, err := s.getNonce(txn, sm.From)
	if err != nil {
		return nil, err
	}
	if sm.Nonce != nonce {
		return nil, xerrors.Errorf("%w: got %d, expected %d", types.ErrMsgNonce, sm.Nonce, nonce)
	}

	ret, err := s.dispatch(txn, &sm.Message, s.now())
	if err != nil {
		return nil, err
	}

	if err := putUint(txn, nonceKey(sm.From), nonce+1); err != nil {
		return nil, err
	}

	id, err := sm.ID()
	if err != nil {
		return nil, err
	}
	root := s.root.Chain(id)

	r := &tx.Receipt{
		ID:     id,
		Method: sm.Method,
		Height: s.height,
		Root:   root,
		Return: ret,
	}
	if err := s.txs.PutApplied(txn, sm, r); err != nil {
		return nil, err
	}
	if err := txn.Put(store.NewKey("state", "root"), root.Bytes()); err != nil {
		return nil, err
	}
	if err := putUint(txn, store.NewKey("state", "height"), s.height+1); err != nil {
		return nil, err
	}

	if err := txn.Commit(); err != nil {
		return nil, err
	}

	s.root = root
	s.height++

	logger.Debugw("message applied", "id", id, "from", sm.From, "method", tx.MethodName(sm.Method), "height", r.Height)

	return r, nil
}

// view runs fn on a read-only snapshot.
func (s *StateMgr) view(fn func(st store.Store) error) error {
	txn, err := s.ds.NewTxnStore(false)
	if err != nil {
		return err
	}
	defer txn.Discard()
	return fn(txn)
}
