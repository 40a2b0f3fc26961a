package market

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/artwhale/go-artwhale/build"
	"github.com/artwhale/go-artwhale/lib/types"
	"github.com/artwhale/go-artwhale/lib/types/store"
)

// OrderDetails returns the order with id, or the zero order when absent.
func (e *Engine) OrderDetails(s store.Store, id uint64) (*types.Order, error) {
	if v, ok := e.cache.Get(id); ok {
		return v.(*types.Order).Copy(), nil
	}

	o, err := e.getOrder(s, id)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		e.cache.Add(id, o.Copy())
	}
	return o, nil
}

func (e *Engine) OrderDetailsBatch(s store.Store, ids []uint64) ([]*types.Order, error) {
	res := make([]*types.Order, 0, len(ids))
	for _, id := range ids {
		o, err := e.OrderDetails(s, id)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, nil
}

func (e *Engine) OrderKind(s store.Store, id uint64) (types.OrderKind, error) {
	o, err := e.OrderDetails(s, id)
	if err != nil {
		return 0, err
	}
	if o.Status == types.StatusNull {
		return 0, types.ErrOrderNotExist
	}
	return o.Kind, nil
}

func (e *Engine) TotalOrders(s store.Store, st types.OrderStatus) (uint64, error) {
	return e.getUint(s, countKey(st))
}

func (e *Engine) TotalOrdersBySeller(s store.Store, seller common.Address, st types.OrderStatus) (uint64, error) {
	return e.getUint(s, sellerCountKey(seller, st))
}

func checkPage(limit uint64) (uint64, error) {
	if limit == 0 {
		return build.DefaultPageLimit, nil
	}
	if limit > build.MaxPageLimit {
		return 0, types.ErrWrongPage
	}
	return limit, nil
}

// FetchOrders pages through ids with status in ascending id order. Reads of
// the page and total share the snapshot s.
func (e *Engine) FetchOrders(s store.Store, st types.OrderStatus, offset, limit uint64) (*types.OrderPage, error) {
	total, err := e.TotalOrders(s, st)
	if err != nil {
		return nil, err
	}
	ids, err := e.page(s, store.NewPrefix("idx", "status", uint8(st)), offset, limit)
	if err != nil {
		return nil, err
	}
	return &types.OrderPage{IDs: ids, Total: total}, nil
}

func (e *Engine) FetchOrdersBySeller(s store.Store, seller common.Address, st types.OrderStatus, offset, limit uint64) (*types.OrderPage, error) {
	total, err := e.TotalOrdersBySeller(s, seller, st)
	if err != nil {
		return nil, err
	}
	ids, err := e.page(s, store.NewPrefix("idx", "seller", seller, uint8(st)), offset, limit)
	if err != nil {
		return nil, err
	}
	return &types.OrderPage{IDs: ids, Total: total}, nil
}

func (e *Engine) page(s store.Store, pre []byte, offset, limit uint64) ([]uint64, error) {
	limit, err := checkPage(limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, limit)
	var pos uint64
	err = e.ds(s).IterKeys(pre, func(k []byte) error {
		if pos < offset {
			pos++
			return nil
		}
		if uint64(len(ids)) >= limit {
			return store.ErrStopIter
		}

		sk := string(k)
		id, err := strconv.ParseUint(sk[strings.LastIndex(sk, store.KeySep)+1:], 10, 64)
		if err != nil {
			return xerrors.Errorf("bad index key %s: %w", sk, err)
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}
