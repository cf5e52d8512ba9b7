package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/services"
	"quotedesk/store"
)

// HandleQuoteView returns one quote with its totals.
// Route: GET /api/quotes/{id}
func HandleQuoteView(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := s.Snapshot()
		id := e.Request.PathValue("id")
		for _, q := range data.Quotes {
			if q.ID == id {
				return e.JSON(http.StatusOK, viewQuotes(&data, []models.Quote{q})[0])
			}
		}
		return e.String(http.StatusNotFound, "Quote not found")
	}
}

// HandleQuoteMetrics returns only the computed totals of a quote.
// Route: GET /api/quotes/{id}/metrics
func HandleQuoteMetrics(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := s.Quote(e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, "quote_metrics", err)
		}
		var est *models.Estimate
		if found, err := s.Estimate(q.EstimateID); err == nil {
			est = &found
		}
		m := services.ComputeQuoteMetrics(&q, est)
		return e.JSON(http.StatusOK, map[string]any{
			"metrics":    m,
			"health":     services.ClassifyMargin(m),
			"categories": services.GroupItemsByCategory(q.Items),
		})
	}
}
