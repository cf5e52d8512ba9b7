package services

import (
	"sort"

	"quotedesk/models"
)

// DashboardSummary is the overview shown on the landing page.
type DashboardSummary struct {
	Clients        int                        `json:"clients"`
	Estimates      int                        `json:"estimates"`
	Quotes         int                        `json:"quotes"`
	StatusCounts   map[models.QuoteStatus]int `json:"statusCounts"`
	AcceptedTotal  float64                    `json:"acceptedTotal"`
	AcceptedProfit float64                    `json:"acceptedProfit"`
	OpenPipeline   float64                    `json:"openPipeline"` // grand totals of draft and sent quotes
	AtRisk         []AtRiskQuote              `json:"atRisk"`
}

// AtRiskQuote is an open quote whose margin is thin or negative.
type AtRiskQuote struct {
	ID           string       `json:"id"`
	QuoteNumber  string       `json:"quoteNumber"`
	Name         string       `json:"name"`
	ProfitMargin float64      `json:"profitMargin"`
	Health       MarginHealth `json:"health"`
}

// Summarize computes quote counts per status, accepted totals and the open
// quotes with a thin or negative margin, lowest margin first.
func Summarize(data *models.AppData) DashboardSummary {
	s := DashboardSummary{
		StatusCounts: make(map[models.QuoteStatus]int, len(models.Statuses)),
		AtRisk:       []AtRiskQuote{},
	}
	for _, st := range models.Statuses {
		s.StatusCounts[st] = 0
	}
	if data == nil {
		return s
	}

	s.Clients = len(data.Clients)
	s.Estimates = len(data.Estimates)
	s.Quotes = len(data.Quotes)

	estimates := make(map[string]*models.Estimate, len(data.Estimates))
	for i := range data.Estimates {
		estimates[data.Estimates[i].ID] = &data.Estimates[i]
	}

	for i := range data.Quotes {
		q := &data.Quotes[i]
		s.StatusCounts[q.Status]++

		m := ComputeQuoteMetrics(q, estimates[q.EstimateID])
		switch q.Status {
		case models.StatusAccepted:
			s.AcceptedTotal += m.GrandTotal
			s.AcceptedProfit += m.TotalProfit
		case models.StatusDraft, models.StatusSent:
			s.OpenPipeline += m.GrandTotal
			if h := ClassifyMargin(m); h != MarginHealthy {
				s.AtRisk = append(s.AtRisk, AtRiskQuote{
					ID:           q.ID,
					QuoteNumber:  q.QuoteNumber,
					Name:         q.Name,
					ProfitMargin: m.ProfitMargin,
					Health:       h,
				})
			}
		}
	}

	sort.SliceStable(s.AtRisk, func(i, j int) bool {
		return s.AtRisk[i].ProfitMargin < s.AtRisk[j].ProfitMargin
	})
	return s
}
