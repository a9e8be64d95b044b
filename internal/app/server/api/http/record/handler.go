package record

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vinylscan/internal/app/server/api/http/middleware/auth"
	"vinylscan/internal/app/server/api/http/response"
	"vinylscan/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.notesOp(), h.updateNotes)
}

func unauthenticated() error {
	return response.Fail(http.StatusUnauthorized, "Not authenticated")
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, unauthenticated()
	}

	records, err := h.service.Collection(ctx, userID)
	if err != nil {
		return nil, response.Fail(http.StatusBadRequest, response.Cause(err))
	}

	return &listOutput{
		Body: listResponse{Success: true, Records: records},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, unauthenticated()
	}

	if input.Body == nil || input.Body.empty() {
		return nil, response.Fail(http.StatusBadRequest, "Record data required")
	}

	rec, err := h.service.Add(ctx, userID, input.Body.toData())
	if err != nil {
		return nil, response.Fail(http.StatusBadRequest, response.Cause(err))
	}

	return &recordOutput{
		Body: recordResponse{Success: true, Record: rec},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, unauthenticated()
	}

	if err := h.service.Remove(ctx, userID, input.ID); err != nil {
		return nil, response.Fail(http.StatusBadRequest, response.Cause(err))
	}

	out := &deleteOutput{}
	out.Body.Success = true
	return out, nil
}

func (h *Handler) updateNotes(ctx context.Context, input *notesInput) (*recordOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, unauthenticated()
	}

	if input.Body == nil || input.Body.Notes == nil {
		return nil, response.Fail(http.StatusBadRequest, "Notes required")
	}

	rec, err := h.service.UpdateNotes(ctx, userID, input.ID, *input.Body.Notes)
	if err != nil {
		// Zero matched rows answer 404 instead of 400; see the notes-update
		// decision in DESIGN.md.
		if errors.Is(err, record.ErrNotFound) {
			return nil, response.Fail(http.StatusNotFound, "Record not found")
		}
		return nil, response.Fail(http.StatusBadRequest, response.Cause(err))
	}

	return &recordOutput{
		Body: recordResponse{Success: true, Record: rec},
	}, nil
}
