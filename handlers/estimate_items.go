package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/store"
)

// HandleEstimateItems replaces the item list of an estimate.
// Route: PUT /api/estimates/{id}/items
func HandleEstimateItems(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var items []models.EstimateItem
		if err := readJSON(e, &items); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		est, err := s.UpdateEstimateItems(e.Request.PathValue("id"), items)
		if err != nil {
			return respondError(e, "estimate_items", err)
		}
		return e.JSON(http.StatusOK, viewEstimate(est))
	}
}
