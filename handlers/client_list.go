package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleClientList returns all clients.
// Route: GET /api/clients
func HandleClientList(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, s.Clients())
	}
}
