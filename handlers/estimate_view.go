package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleEstimateView returns one estimate.
// Route: GET /api/estimates/{id}
func HandleEstimateView(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, err := s.Estimate(e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, "estimate_view", err)
		}
		return e.JSON(http.StatusOK, viewEstimate(est))
	}
}
