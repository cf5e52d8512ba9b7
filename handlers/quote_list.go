package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/models"
	"quotedesk/services"
	"quotedesk/store"
)

// quoteView is a quote with its client name, pricing and margin health.
type quoteView struct {
	models.Quote
	ClientName string                `json:"clientName"`
	Metrics    services.QuoteMetrics `json:"metrics"`
	Health     services.MarginHealth `json:"health"`
}

// viewQuotes prices quotes against the estimates of one snapshot. A client
// that no longer exists shows as "Unknown".
func viewQuotes(data *models.AppData, quotes []models.Quote) []quoteView {
	estimates := make(map[string]*models.Estimate, len(data.Estimates))
	for i := range data.Estimates {
		estimates[data.Estimates[i].ID] = &data.Estimates[i]
	}
	clients := make(map[string]string, len(data.Clients))
	for _, c := range data.Clients {
		clients[c.ID] = c.Name
	}

	out := make([]quoteView, 0, len(quotes))
	for i := range quotes {
		q := &quotes[i]
		est := estimates[q.EstimateID]
		v := quoteView{Quote: *q, ClientName: "Unknown", Metrics: services.ComputeQuoteMetrics(q, est)}
		v.Health = services.ClassifyMargin(v.Metrics)
		if est != nil {
			if name, ok := clients[est.ClientID]; ok {
				v.ClientName = name
			}
		}
		out = append(out, v)
	}
	return out
}

// HandleQuoteList returns all quotes with their totals.
// Route: GET /api/quotes
func HandleQuoteList(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := s.Snapshot()
		return e.JSON(http.StatusOK, viewQuotes(&data, data.Quotes))
	}
}
