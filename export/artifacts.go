package export

import (
	"fmt"

	"quotedesk/document"
	"quotedesk/models"
	"quotedesk/services"
	"quotedesk/templates"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// loose resolves the quote with whatever estimate and client still exist.
// The print page and the spreadsheets degrade instead of refusing.
func loose(data models.AppData, quoteID string) (*models.Quote, *models.Estimate, *models.Client, error) {
	q := findQuote(data.Quotes, quoteID)
	if q == nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingQuote, quoteID)
	}
	est := findEstimate(data.Estimates, q.EstimateID)
	var client *models.Client
	if est != nil {
		for i := range data.Clients {
			if data.Clients[i].ID == est.ClientID {
				client = &data.Clients[i]
				break
			}
		}
	}
	return q, est, client, nil
}

// PrintData builds the print page view model from the same metrics the PDF uses.
func (e *Exporter) PrintData(quoteID string, autoPrint bool) (templates.QuotePrintData, error) {
	data := e.src.Snapshot()
	q, est, client, err := loose(data, quoteID)
	if err != nil {
		return templates.QuotePrintData{}, err
	}

	currency := data.Settings.CurrencyOrDefault()
	money := func(v float64) string { return services.FormatCurrency(v, currency) }
	company := q.CompanyInfo
	if data.Settings.CompanyInfo.Name != "" {
		company = data.Settings.CompanyInfo
	}
	m := services.ComputeQuoteMetrics(q, est)

	d := templates.QuotePrintData{
		Title:          q.QuoteNumber,
		CompanyName:    company.Name,
		CompanyAddress: company.Address,
		CompanyContact: company.Contact,
		BrandColor:     company.BrandColor,
		QuoteNumber:    q.QuoteNumber,
		Date:           services.FormatDate(q.Created()),
		ValidUntil:     services.FormatDate(q.ValidUntil()),
		ClientName:     "Unknown",
		Subtotal:       money(m.TotalAmount),
		DiscountLabel:  services.DiscountLabel(q),
		Discount:       money(m.DiscountAmount),
		TaxLabel:       services.TaxLabel(q.TaxRate),
		Tax:            money(m.TaxAmount),
		GrandTotal:     money(m.GrandTotal),
		Notes:          q.Notes,
		Terms:          document.SplitTerms(q.Terms),
		AutoPrint:      autoPrint,
	}
	if d.Title == "" {
		d.Title = q.Name
	}
	if client != nil {
		d.ClientName = client.Name
	}
	for _, it := range q.Items {
		d.Items = append(d.Items, templates.PrintItem{
			Description: it.Description,
			Qty:         services.FormatQuantity(it.Quantity),
			Unit:        it.Unit,
			UnitPrice:   money(services.EffectiveUnitPrice(it, est)),
			LineTotal:   money(services.LineTotal(it, est)),
		})
	}
	return d, nil
}

func (e *Exporter) exportData(quoteID string) (services.ExportData, *models.Quote, error) {
	data := e.src.Snapshot()
	q, est, client, err := loose(data, quoteID)
	if err != nil {
		return services.ExportData{}, nil, err
	}
	return services.BuildExportData(q, est, client, data.Settings.CurrencyOrDefault()), q, nil
}

// Spreadsheet exports the quote's priced items and totals as XLSX.
func (e *Exporter) Spreadsheet(quoteID string) (*Result, error) {
	data, q, err := e.exportData(quoteID)
	if err != nil {
		return nil, err
	}
	blob, err := services.GenerateExcel(data)
	if err != nil {
		return nil, err
	}
	return &Result{Blob: blob, Filename: Filename(q, "xlsx"), ContentType: xlsxContentType}, nil
}

// MarginReport renders the internal cost and profit report as a PDF.
func (e *Exporter) MarginReport(quoteID string) (*Result, error) {
	data, q, err := e.exportData(quoteID)
	if err != nil {
		return nil, err
	}
	blob, err := services.GenerateMarginReport(data)
	if err != nil {
		return nil, err
	}
	return &Result{Blob: blob, Filename: "margin-" + Filename(q, "pdf"), ContentType: "application/pdf"}, nil
}
