package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleClientCreate adds a client.
// Route: POST /api/clients
func HandleClientCreate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.ClientInput
		if err := readJSON(e, &in); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		c, err := s.AddClient(in)
		if err != nil {
			return respondError(e, "client_create", err)
		}
		return e.JSON(http.StatusCreated, c)
	}
}
