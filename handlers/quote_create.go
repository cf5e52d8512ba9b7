package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleQuoteFromEstimate creates a draft quote priced at cost.
// Route: POST /api/estimates/{id}/quotes
func HandleQuoteFromEstimate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Name string `json:"name"`
		}
		if e.Request.ContentLength != 0 {
			if err := readJSON(e, &body); err != nil {
				return e.String(http.StatusBadRequest, err.Error())
			}
		}
		q, err := s.CreateQuoteFromEstimate(e.Request.PathValue("id"), body.Name)
		if err != nil {
			return respondError(e, "quote_create", err)
		}
		return e.JSON(http.StatusCreated, q)
	}
}
