package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleClientUpdate patches a client.
// Route: PATCH /api/clients/{id}
func HandleClientUpdate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p store.ClientPatch
		if err := readJSON(e, &p); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		c, err := s.UpdateClient(e.Request.PathValue("id"), p)
		if err != nil {
			return respondError(e, "client_update", err)
		}
		return e.JSON(http.StatusOK, c)
	}
}
