package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleQuoteUpdate patches the quote's header fields.
// Route: PATCH /api/quotes/{id}
func HandleQuoteUpdate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p store.QuotePatch
		if err := readJSON(e, &p); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		q, err := s.UpdateQuote(e.Request.PathValue("id"), p)
		if err != nil {
			return respondError(e, "quote_update", err)
		}
		return e.JSON(http.StatusOK, q)
	}
}
