package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates the client-facing quote spreadsheet from the given
// ExportData and returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars, no []:*?/\).
	sheetName := sheetNameReplacer.Replace(data.QuoteNumber)
	if sheetName == "" {
		sheetName = "Quote"
	}
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 44, 10, 10, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#2D3748"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Category heading rows: bold, light fill.
	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F7FAFC"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge quote number: %w", err)
	}
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(fmt.Sprintf("Quote #: %s    Client: %s", data.QuoteNumber, data.ClientName)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Date: %s    Valid Until: %s", data.CreatedDate, data.ValidUntil))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Description", "Qty", "Unit", "Unit Price", "Line Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		if r.Level == 0 {
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Description))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, categoryStyle)
			row++
			continue
		}

		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell("  "+r.Description))
		f.SetCellValue(sheetName, "C"+rowStr, r.Qty)
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "E"+rowStr, FormatCurrency(r.UnitPrice, data.Currency))
		f.SetCellValue(sheetName, "F"+rowStr, FormatCurrency(r.LineTotal, data.Currency))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	summary := []struct {
		label string
		value string
	}{
		{"Subtotal:", FormatCurrency(data.Metrics.TotalAmount, data.Currency)},
		{data.DiscountLabel + ":", "- " + FormatCurrency(data.Metrics.DiscountAmount, data.Currency)},
		{TaxLabel(data.TaxRate) + ":", FormatCurrency(data.Metrics.TaxAmount, data.Currency)},
		{"Total:", FormatCurrency(data.Metrics.GrandTotal, data.Currency)},
	}
	for _, s := range summary {
		summaryRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+summaryRow, s.label)
		f.SetCellStyle(sheetName, "E"+summaryRow, "E"+summaryRow, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+summaryRow, s.value)
		f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

var sheetNameReplacer = strings.NewReplacer("[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", "\\", "-")

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
