package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateMarginReport creates the internal margin report for a quote using
// maroto/v2: per-item base cost, markup and line profit, plus the quote's
// cost, subtotal and profit summary. Not meant for the client.
func GenerateMarginReport(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	// --- Header Section ---
	addReportHeader(m, data)

	// --- Table Header ---
	addReportTableHeader(m)

	// --- Table Body ---
	for _, r := range data.Rows {
		addReportRow(m, r, data.Currency)
	}

	// --- Summary Section ---
	addReportSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate margin report: %w", err)
	}

	return doc.GetBytes(), nil
}

var (
	reportGrey    = &props.Color{Red: 80, Green: 80, Blue: 80}
	reportLossRed = &props.Color{Red: 197, Green: 48, Blue: 48}
	reportAmber   = &props.Color{Red: 183, Green: 121, Blue: 31}
	reportGreen   = &props.Color{Red: 47, Green: 133, Blue: 90}
)

// addReportHeader adds the title, quote number, client and dates.
func addReportHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Margin Report: "+data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote #: %s    Client: %s    Status: %s", data.QuoteNumber, data.ClientName, data.Status), props.Text{
					Size:  9,
					Align: align.Left,
					Color: reportGrey,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s    Valid Until: %s", data.CreatedDate, data.ValidUntil), props.Text{
					Size:  9,
					Align: align.Right,
					Color: reportGrey,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addReportTableHeader adds the column header row.
func addReportTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 45, Green: 55, Blue: 72}}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Base Cost", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Markup", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Line Profit", headerText)).WithStyle(&headerCell),
		),
	)
}

// addReportRow adds a category heading or an item row.
func addReportRow(m core.Maroto, r ExportRow, currency string) {
	if r.Level == 0 {
		bg := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(r.Index, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center})).WithStyle(bg),
				col.New(11).Add(text.New(r.Description, props.Text{Size: 8, Style: fontstyle.Bold})).WithStyle(bg),
			),
		)
		return
	}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	profit := r.LineTotal - r.LineCost
	profitText := rightText
	if profit < 0 {
		profitText.Color = reportLossRed
	}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(r.Index, baseText)),
			col.New(3).Add(text.New("  "+r.Description, leftText)),
			col.New(1).Add(text.New(FormatQuantity(r.Qty)+" "+r.Unit, rightText)),
			col.New(2).Add(text.New(FormatCurrencyPDF(r.BaseCost, currency), rightText)),
			col.New(1).Add(text.New(r.markupText(FormatCurrencyPDF, currency), baseText)),
			col.New(2).Add(text.New(FormatCurrencyPDF(r.UnitPrice, currency), rightText)),
			col.New(2).Add(text.New(FormatCurrencyPDF(profit, currency), profitText)),
		),
	)
}

// addReportSummary adds cost, subtotal, profit and margin rows.
func addReportSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := labelStyle

	healthStyle := valueStyle
	switch data.Health {
	case MarginLoss:
		healthStyle.Color = reportLossRed
	case MarginThin:
		healthStyle.Color = reportAmber
	default:
		healthStyle.Color = reportGreen
	}

	mt := data.Metrics
	lines := []struct {
		label string
		value string
		style props.Text
	}{
		{"Estimated Cost", FormatCurrencyPDF(mt.TotalCost, data.Currency), valueStyle},
		{"Subtotal (after discount)", FormatCurrencyPDF(mt.Subtotal, data.Currency), valueStyle},
		{"Tax", FormatCurrencyPDF(mt.TaxAmount, data.Currency), valueStyle},
		{"Grand Total", FormatCurrencyPDF(mt.GrandTotal, data.Currency), valueStyle},
		{"Profit", FormatCurrencyPDF(mt.TotalProfit, data.Currency), healthStyle},
		{fmt.Sprintf("Margin (%s)", data.Health), fmt.Sprintf("%.1f%%", mt.ProfitMargin), healthStyle},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.value, l.style)).WithStyle(summaryCell),
			),
		)
	}
}
