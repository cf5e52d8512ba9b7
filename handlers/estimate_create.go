package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleEstimateCreate adds an estimate for an existing client.
// Route: POST /api/estimates
func HandleEstimateCreate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in store.EstimateInput
		if err := readJSON(e, &in); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		est, err := s.AddEstimate(in)
		if err != nil {
			return respondError(e, "estimate_create", err)
		}
		return e.JSON(http.StatusCreated, viewEstimate(est))
	}
}
