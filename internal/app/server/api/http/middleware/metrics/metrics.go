package metrics

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"vinylscan/internal/infrastructure/metrics"
)

// Middleware records request count and latency per operation path.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		route := ctx.URL().Path
		if op := ctx.Operation(); op != nil {
			route = op.Path
		}
		metrics.RecordHTTPRequest(ctx.Method(), route, ctx.Status(), time.Since(start))
	}
}
