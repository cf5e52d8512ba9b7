package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleEstimateUpdate renames an estimate or moves it to another client.
// Route: PATCH /api/estimates/{id}
func HandleEstimateUpdate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p store.EstimatePatch
		if err := readJSON(e, &p); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		est, err := s.UpdateEstimate(e.Request.PathValue("id"), p)
		if err != nil {
			return respondError(e, "estimate_update", err)
		}
		return e.JSON(http.StatusOK, viewEstimate(est))
	}
}
