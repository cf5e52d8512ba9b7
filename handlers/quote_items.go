package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/store"
)

// HandleQuoteItems replaces the quote's items.
// Route: PUT /api/quotes/{id}/items
func HandleQuoteItems(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var items []models.QuoteItem
		if err := readJSON(e, &items); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		q, err := s.UpdateQuoteItems(e.Request.PathValue("id"), items)
		if err != nil {
			return respondError(e, "quote_items", err)
		}
		return e.JSON(http.StatusOK, q)
	}
}
