package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/store"
)

// HandleQuoteStatus sets the quote status. Any transition is allowed.
// Route: POST /api/quotes/{id}/status
func HandleQuoteStatus(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Status models.QuoteStatus `json:"status"`
		}
		if err := readJSON(e, &body); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		q, err := s.SetQuoteStatus(e.Request.PathValue("id"), body.Status)
		if err != nil {
			return respondError(e, "quote_status", err)
		}
		return e.JSON(http.StatusOK, q)
	}
}
