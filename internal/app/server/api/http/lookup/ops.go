package lookup

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "lookup-barcode",
		Method:      http.MethodGet,
		Path:        "/lookup/{barcode}",
		Summary:     "Look up a barcode on Discogs",
		Description: "Returns the normalized release for the barcode, or success=false when Discogs has no match.",
		Tags:        []string{"lookup"},
		Middlewares: h.middleware,
	}
}
