package services

import (
	"fmt"
	"strconv"

	"quotedesk/models"
)

// ExportRow represents a single row in a quote export: a category heading or a priced item.
type ExportRow struct {
	Level       int    // 0 = category heading, 1 = item
	Index       string // "1", "1.1", "1.2" etc
	Description string
	Qty         float64
	Unit        string
	BaseCost    float64
	MarkupType  models.MarkupType
	MarkupValue float64
	UnitPrice   float64
	LineTotal   float64
	LineCost    float64
}

// ExportData holds all data needed for the spreadsheet and margin report exports.
type ExportData struct {
	Title         string
	QuoteNumber   string
	ClientName    string
	Status        models.QuoteStatus
	Currency      string
	CreatedDate   string
	ValidUntil    string
	Rows          []ExportRow
	Metrics       QuoteMetrics
	TaxRate       float64
	DiscountLabel string
	Health        MarginHealth
}

// BuildExportData flattens a quote into category headings and item rows with
// effective prices, and attaches its metrics. The estimate and client may be nil.
func BuildExportData(q *models.Quote, est *models.Estimate, client *models.Client, currency string) ExportData {
	data := ExportData{Currency: currency}
	if q == nil {
		return data
	}

	data.Title = q.Name
	if data.Title == "" {
		data.Title = q.QuoteNumber
	}
	data.QuoteNumber = q.QuoteNumber
	data.Status = q.Status
	data.CreatedDate = FormatDate(q.Created())
	data.ValidUntil = FormatDate(q.ValidUntil())
	data.TaxRate = finite(q.TaxRate)
	if client != nil {
		data.ClientName = client.Name
	} else {
		data.ClientName = "Unknown"
	}

	data.Metrics = ComputeQuoteMetrics(q, est)
	data.Health = ClassifyMargin(data.Metrics)
	data.DiscountLabel = DiscountLabel(q)

	for gi, group := range GroupItemsByCategory(q.Items) {
		groupIndex := strconv.Itoa(gi + 1)
		data.Rows = append(data.Rows, ExportRow{
			Level:       0,
			Index:       groupIndex,
			Description: group.Category,
		})
		for ii, it := range group.Items {
			base := ResolveBaseCost(it, est)
			data.Rows = append(data.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", groupIndex, ii+1),
				Description: it.Description,
				Qty:         finite(it.Quantity),
				Unit:        it.Unit,
				BaseCost:    base,
				MarkupType:  it.MarkupType.Normalize(),
				MarkupValue: finite(it.MarkupValue),
				UnitPrice:   EffectiveUnitPrice(it, est),
				LineTotal:   LineTotal(it, est),
				LineCost:    finite(base * finite(it.Quantity)),
			})
		}
	}
	return data
}

// markupText renders the row's markup as "25%" or "+$5.00" using the given
// currency formatter.
func (r ExportRow) markupText(format func(float64, string) string, currency string) string {
	if r.MarkupType == models.MarkupAmount {
		return "+" + format(r.MarkupValue, currency)
	}
	return FormatPercent(r.MarkupValue)
}
