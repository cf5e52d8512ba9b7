package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"quotedesk/models"
)

// TemplateField describes one column of the estimate item import sheet.
type TemplateField struct {
	Key            string   // internal name, matches the JSON field of EstimateItem
	Label          string   // human-readable header shown in Excel
	Aliases        []string // other accepted headers, lower case
	Description    string   // shown on the Instructions sheet
	FormatRule     string   // e.g. "number >= 0"
	ExampleValue   string   // shown on the Instructions sheet
	AlwaysRequired bool
}

// ItemTemplateFields returns the ordered list of columns for estimate item imports.
func ItemTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "description", Label: "Description", Aliases: []string{"item", "name"}, Description: "What is being supplied or done", ExampleValue: "Kitchen cabinets", AlwaysRequired: true},
		{Key: "category", Label: "Category", Aliases: []string{"group", "section"}, Description: "Used to group items on the quote", ExampleValue: "Materials"},
		{Key: "quantity", Label: "Quantity", Aliases: []string{"qty"}, Description: "How many units", FormatRule: "number >= 0", ExampleValue: "2", AlwaysRequired: true},
		{Key: "unit", Label: "Unit", Aliases: []string{"uom"}, Description: "Unit of measurement, defaults to unit", ExampleValue: "set"},
		{Key: "costPerUnit", Label: "Cost Per Unit", Aliases: []string{"cost", "unit cost", "rate"}, Description: "Your raw cost for one unit", FormatRule: "number >= 0", ExampleValue: "40.00", AlwaysRequired: true},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ItemImportResult is returned after parsing and validating an uploaded item file.
// Items holds only the rows without errors, in file order and without IDs.
type ItemImportResult struct {
	TotalRows    int                   `json:"total_rows"`
	ValidRows    int                   `json:"valid_rows"`
	ErrorRows    int                   `json:"error_rows"`
	Errors       []ValidationError     `json:"errors"`
	Unrecognized []string              `json:"unrecognized_columns,omitempty"`
	Items        []models.EstimateItem `json:"items"`
	FileName     string                `json:"-"`
}

// utf8BOM is written by some spreadsheet tools at the start of CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvText returns the file content as UTF-8. Files that are not valid UTF-8
// are read as Windows-1252, the encoding spreadsheet tools on Windows save.
func csvText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}
	return decoded, nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data, err := csvText(raw)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		for _, a := range f.Aliases {
			labelToKey[a] = f.Key
		}
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ParseEstimateItems parses and validates an uploaded .csv or .xlsx file of
// estimate items.
func ParseEstimateItems(file io.Reader, fileName string) (*ItemImportResult, error) {
	fields := ItemTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, unrecognized := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
	}

	result := &ItemImportResult{
		FileName:     fileName,
		Unrecognized: unrecognized,
		Items:        make([]models.EstimateItem, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		blank := true

		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[colIdx])
			rowData[key] = value
			if value != "" {
				blank = false
			}
		}
		// Spreadsheets often carry trailing empty rows.
		if blank {
			continue
		}
		result.TotalRows++

		var rowErrors []ValidationError
		for _, f := range fields {
			if f.AlwaysRequired && rowData[f.Key] == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   f.Label,
					Message: fmt.Sprintf("%s is required", f.Label),
				})
			}
		}

		item := models.EstimateItem{
			Description: rowData["description"],
			Category:    rowData["category"],
			Unit:        rowData["unit"],
		}
		if item.Unit == "" {
			item.Unit = "unit"
		}

		for _, key := range []string{"quantity", "costPerUnit"} {
			raw := rowData[key]
			if raw == "" {
				continue
			}
			v, err := parseImportNumber(raw)
			if err != nil {
				rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: keyToLabel[key], Message: fmt.Sprintf("%s must be a number", keyToLabel[key])})
				continue
			}
			if v < 0 {
				rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: keyToLabel[key], Message: fmt.Sprintf("%s must not be negative", keyToLabel[key])})
				continue
			}
			if key == "quantity" {
				item.Quantity = v
			} else {
				item.CostPerUnit = v
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		result.Items = append(result.Items, item)
	}

	result.ValidRows = len(result.Items)
	return result, nil
}

// parseImportNumber accepts "1,234.50", "$40" and plain numbers.
func parseImportNumber(raw string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == 'e', r == 'E', r == '+':
			return r
		}
		return -1
	}, raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, err
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("number out of range: %s", raw)
	}
	return v, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
