package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/services"
	"quotedesk/store"
)

// estimateView is an estimate with its raw cost total.
type estimateView struct {
	models.Estimate
	TotalCost float64 `json:"totalCost"`
}

func viewEstimate(est models.Estimate) estimateView {
	return estimateView{Estimate: est, TotalCost: services.ComputeEstimateCost(&est)}
}

// HandleEstimateList returns all estimates with their cost totals.
// Route: GET /api/estimates
func HandleEstimateList(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ests := s.Estimates()
		out := make([]estimateView, 0, len(ests))
		for _, est := range ests {
			out = append(out, viewEstimate(est))
		}
		return e.JSON(http.StatusOK, out)
	}
}
