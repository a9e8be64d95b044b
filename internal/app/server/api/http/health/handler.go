// Package health answers the root liveness ping.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const runningMessage = "Server is running"

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{log: log, middleware: mws}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.status)
}

// status does not touch the store or Discogs.
func (h *Handler) status(context.Context, *struct{}) (*statusOutput, error) {
	return &statusOutput{
		Body: statusBody{Status: "ok", Message: runningMessage},
	}, nil
}
