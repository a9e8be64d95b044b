package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Liveness ping",
		Tags:        []string{"status"},
		Middlewares: h.middleware,
	}
}
