// Package services provides quote pricing, formatting and export functions.
package services

import (
	"math"

	"quotedesk/models"
)

// QuoteMetrics holds the aggregated financial figures for a quote.
type QuoteMetrics struct {
	TotalCost      float64 `json:"totalCost"`
	TotalAmount    float64 `json:"totalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"taxAmount"`
	GrandTotal     float64 `json:"grandTotal"`
	TotalProfit    float64 `json:"totalProfit"`
	ProfitMargin   float64 `json:"profitMargin"`
}

// ResolveBaseCost returns the cost per unit of the estimate item sharing the
// quote item's id, or 0 when there is no estimate or no match.
func ResolveBaseCost(item models.QuoteItem, est *models.Estimate) float64 {
	estItem, ok := est.FindItem(item.ID)
	if !ok {
		return 0
	}
	return finite(estItem.CostPerUnit)
}

// EffectiveUnitPrice applies the item's markup to its resolved base cost.
// A negative result is clamped to zero.
func EffectiveUnitPrice(item models.QuoteItem, est *models.Estimate) float64 {
	base := ResolveBaseCost(item, est)
	value := finite(item.MarkupValue)

	var price float64
	switch item.MarkupType.Normalize() {
	case models.MarkupAmount:
		price = base + value
	default:
		price = base * (1 + value/100)
	}
	if price < 0 {
		return 0
	}
	return finite(price)
}

// LineTotal returns quantity times the effective unit price.
func LineTotal(item models.QuoteItem, est *models.Estimate) float64 {
	return finite(finite(item.Quantity) * EffectiveUnitPrice(item, est))
}

// ComputeEstimateCost sums quantity * costPerUnit over the estimate's items.
func ComputeEstimateCost(est *models.Estimate) float64 {
	if est == nil {
		return 0
	}
	var total float64
	for _, it := range est.Items {
		total += finite(it.Quantity) * finite(it.CostPerUnit)
	}
	return finite(total)
}

// ComputeQuoteMetrics derives cost, discount, tax and profit figures for a quote.
// Profit excludes tax. The estimate may be nil.
func ComputeQuoteMetrics(q *models.Quote, est *models.Estimate) QuoteMetrics {
	var m QuoteMetrics
	if q == nil {
		return m
	}

	m.TotalCost = ComputeEstimateCost(est)

	for _, it := range q.Items {
		m.TotalAmount += LineTotal(it, est)
	}
	m.TotalAmount = finite(m.TotalAmount)

	discount := finite(q.Discount)
	if q.DiscountType.Normalize() == models.DiscountAmount {
		m.DiscountAmount = discount
	} else {
		m.DiscountAmount = finite(m.TotalAmount * discount / 100)
	}

	m.Subtotal = math.Max(m.TotalAmount-m.DiscountAmount, 0)
	m.TaxAmount = finite(m.Subtotal * finite(q.TaxRate) / 100)
	m.GrandTotal = m.Subtotal + m.TaxAmount
	m.TotalProfit = m.Subtotal - m.TotalCost
	if m.Subtotal > 0 {
		m.ProfitMargin = m.TotalProfit / m.Subtotal * 100
	}
	return m
}

// MarginHealth classifies a quote's profitability.
type MarginHealth string

const (
	MarginLoss    MarginHealth = "loss"
	MarginThin    MarginHealth = "thin"
	MarginHealthy MarginHealth = "healthy"
)

// thinMarginPercent is the margin below which a profitable quote is flagged.
const thinMarginPercent = 5

// ClassifyMargin reports whether the quote loses money, earns a thin margin or is healthy.
func ClassifyMargin(m QuoteMetrics) MarginHealth {
	switch {
	case m.TotalProfit < 0:
		return MarginLoss
	case m.ProfitMargin < thinMarginPercent:
		return MarginThin
	default:
		return MarginHealthy
	}
}

// CategoryGroup is a run of quote items sharing a category.
type CategoryGroup struct {
	Category string             `json:"category"`
	Items    []models.QuoteItem `json:"items"`
}

// GroupItemsByCategory groups items by category in first-seen order.
// Items without a category land in "Uncategorized".
func GroupItemsByCategory(items []models.QuoteItem) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, it := range items {
		cat := it.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// finite returns 0 for NaN and infinities so degenerate input never leaks into totals.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
