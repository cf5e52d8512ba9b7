package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleClientDelete removes a client. Its estimates and quotes are kept.
// Route: DELETE /api/clients/{id}
func HandleClientDelete(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := s.DeleteClient(e.Request.PathValue("id")); err != nil {
			return respondError(e, "client_delete", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
