package recoverer

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"
	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"
)

type Recoverer struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Recoverer {
	return &Recoverer{log: log.With(slog.String("component", "recoverer"))}
}

// Middleware turns a handler panic into a 500 failure envelope carrying the
// panic value as text.
func (r *Recoverer) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			msg := fmt.Sprint(rec)
			r.log.Error("handler panic",
				slog.String("method", ctx.Method()),
				slog.String("path", ctx.URL().Path),
				slog.String("panic", msg),
				slog.String("stack", string(debug.Stack())),
			)

			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusInternalServerError)
			_ = json.NewEncoder(ctx.BodyWriter()).Encode(map[string]any{
				"success": false,
				"error":   msg,
			})
		}()

		next(ctx)
	}
}
