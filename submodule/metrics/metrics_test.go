package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

func TestCounter(t *testing.T) {
	require.NoError(t, view.Register(OrderCreatedView, TxMessageFailureView))
	defer view.Unregister(OrderCreatedView, TxMessageFailureView)

	ctx := context.Background()
	Counter(ctx, OrderCreated)
	Counter(ctx, OrderCreated)
	Counter(ctx, TxMessageFailure, tag.Upsert(MsgMethod, "CreateOrder"), tag.Upsert(ErrKind, "validation"))

	rows, err := view.RetrieveData(OrderCreatedView.Name)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].Data.(*view.CountData).Value)

	rows, err = view.RetrieveData(TxMessageFailureView.Name)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Tags, 2)
}
