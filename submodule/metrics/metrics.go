package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var defaultMillisecondsDistribution = view.Distribution(0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500, 650, 800, 1000, 2000, 5000, 10000)

var (
	Version, _   = tag.NewKey("version")
	Commit, _    = tag.NewKey("commit")
	APIMethod, _ = tag.NewKey("api_method")
	MsgMethod, _ = tag.NewKey("msg_method")
	ErrKind, _   = tag.NewKey("err_kind")
)

var (
	// common
	ArtInfo            = stats.Int64("info", "ArtWhale info", stats.UnitDimensionless)
	APIRequestDuration = stats.Float64("api/request_duration_ms", "Duration of API requests", stats.UnitMilliseconds)

	// message
	TxMessageReceived = stats.Int64("message/received", "Counter for total received messages", stats.UnitDimensionless)
	TxMessageSuccess  = stats.Int64("message/success", "Counter for applied messages", stats.UnitDimensionless)
	TxMessageFailure  = stats.Int64("message/failure", "Counter for rejected messages", stats.UnitDimensionless)
	TxMessageApply    = stats.Float64("message/apply_ms", "Time spent applying one message", stats.UnitMilliseconds)
	StateHeight       = stats.Int64("state/height", "Number of applied messages", stats.UnitDimensionless)

	// market
	OrderCreated  = stats.Int64("order/created", "Counter for created orders", stats.UnitDimensionless)
	OrderCanceled = stats.Int64("order/cancelled", "Counter for cancelled orders", stats.UnitDimensionless)
	OrderExecuted = stats.Int64("order/executed", "Counter for executed orders", stats.UnitDimensionless)
	ItemMinted    = stats.Int64("mint/redeemed", "Counter for minted items", stats.UnitDimensionless)
)

var (
	InfoView = &view.View{
		Name:        "info",
		Description: "artwhale information",
		Measure:     ArtInfo,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{Version, Commit},
	}
	APIRequestDurationView = &view.View{
		Measure:     APIRequestDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{APIMethod},
	}

	TxMessageReceivedView = &view.View{
		Measure:     TxMessageReceived,
		Aggregation: view.Count(),
	}
	TxMessageSuccessView = &view.View{
		Measure:     TxMessageSuccess,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{MsgMethod},
	}
	TxMessageFailureView = &view.View{
		Measure:     TxMessageFailure,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{MsgMethod, ErrKind},
	}
	TxMessageApplyView = &view.View{
		Measure:     TxMessageApply,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{MsgMethod},
	}
	StateHeightView = &view.View{
		Measure:     StateHeight,
		Aggregation: view.LastValue(),
	}

	OrderCreatedView = &view.View{
		Measure:     OrderCreated,
		Aggregation: view.Count(),
	}
	OrderCanceledView = &view.View{
		Measure:     OrderCanceled,
		Aggregation: view.Count(),
	}
	OrderExecutedView = &view.View{
		Measure:     OrderExecuted,
		Aggregation: view.Count(),
	}
	ItemMintedView = &view.View{
		Measure:     ItemMinted,
		Aggregation: view.Count(),
	}
)

var DefaultViews = func() []*view.View {
	views := []*view.View{
		InfoView,
		APIRequestDurationView,

		TxMessageReceivedView,
		TxMessageSuccessView,
		TxMessageFailureView,
		TxMessageApplyView,
		StateHeightView,

		OrderCreatedView,
		OrderCanceledView,
		OrderExecutedView,
		ItemMintedView,
	}
	return views
}()

func SinceInMilliseconds(startTime time.Time) float64 {
	return float64(time.Since(startTime).Nanoseconds()) / 1e6
}

func Timer(ctx context.Context, m *stats.Float64Measure) func() {
	start := time.Now()
	return func() {
		stats.Record(ctx, m.M(SinceInMilliseconds(start)))
	}
}

// Counter adds one to m under the given tags.
func Counter(ctx context.Context, m *stats.Int64Measure, mutators ...tag.Mutator) {
	if len(mutators) > 0 {
		nctx, err := tag.New(ctx, mutators...)
		if err == nil {
			ctx = nctx
		}
	}
	stats.Record(ctx, m.M(1))
}
