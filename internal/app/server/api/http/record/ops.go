package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var security = []map[string][]string{{"bearer": {}}, {"cookie": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-list",
		Method:      http.MethodGet,
		Path:        "/api/records",
		Summary:     "List the caller's collection",
		Description: "Newest first.",
		Tags:        []string{"records"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "records-create",
		Method:        http.MethodPost,
		Path:          "/api/records",
		Summary:       "Add a record to the collection",
		Tags:          []string{"records"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-delete",
		Method:      http.MethodDelete,
		Path:        "/api/records/{id}",
		Summary:     "Remove a record",
		Description: "Removing a record that does not exist or belongs to someone else still succeeds.",
		Tags:        []string{"records"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) notesOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-update-notes",
		Method:      http.MethodPut,
		Path:        "/api/records/{id}/notes",
		Summary:     "Replace a record's notes",
		Tags:        []string{"records"},
		Security:    security,
		Middlewares: h.middleware,
	}
}
