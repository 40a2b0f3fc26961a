package api

import (
	"context"
	"reflect"

	"go.opencensus.io/tag"

	"github.com/artwhale/go-artwhale/submodule/metrics"
)

// MetricedFullAPI records the duration of every call, tagged by method.
func MetricedFullAPI(a FullNode) FullNode {
	var out FullNodeStruct
	proxy(a, &out)
	return &out
}

func proxy(in interface{}, outstr *FullNodeStruct) {
	outs := GetInternalStructs(outstr)
	for _, out := range outs {
		rint := reflect.ValueOf(out).Elem()
		ra := reflect.ValueOf(in)

		for f := 0; f < rint.NumField(); f++ {
			field := rint.Type().Field(f)
			fn := ra.MethodByName(field.Name)

			rint.Field(f).Set(reflect.MakeFunc(field.Type, func(args []reflect.Value) (results []reflect.Value) {
				ctx := args[0].Interface().(context.Context)
				ctx, _ = tag.New(ctx, tag.Upsert(metrics.APIMethod, field.Name))
				stop := metrics.Timer(ctx, metrics.APIRequestDuration)
				defer stop()
				return fn.Call(args)
			}))
		}
	}
}
