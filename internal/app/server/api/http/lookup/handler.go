package lookup

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/lookup"
)

type Handler struct {
	service    lookup.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service lookup.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.lookupOp(), h.lookup)
}

func (h *Handler) lookup(ctx context.Context, input *lookupInput) (*lookupOutput, error) {
	env, status := h.service.Lookup(ctx, input.Barcode)

	return &lookupOutput{
		Status: status,
		Body:   env,
	}, nil
}
