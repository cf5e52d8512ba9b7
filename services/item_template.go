package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateItemTemplate creates a downloadable .xlsx template for estimate item imports.
func GenerateItemTemplate() ([]byte, error) {
	fields := ItemTemplateFields()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Items"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// --- Styles ---
	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	// Header row, column widths, and one example row.
	columns := columnLetters(len(fields))
	for i, field := range fields {
		cell := fmt.Sprintf("%s1", columns[i])

		headerText := field.Label
		style := optionalHeaderStyle
		if field.AlwaysRequired {
			headerText += " *"
			style = requiredHeaderStyle
		}
		f.SetCellValue(sheetName, cell, headerText)
		f.SetCellStyle(sheetName, cell, cell, style)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", columns[i]), field.ExampleValue)

		width := float64(len(field.Label)) * 1.3
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}

	// Unit dropdown; free text is still accepted on import.
	for i, field := range fields {
		if field.Key != "unit" {
			continue
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s1048576", columns[i], columns[i])
		if err := dv.SetDropList(UnitOptions); err != nil {
			return nil, fmt.Errorf("unit drop list: %w", err)
		}
		dv.SetError(excelize.DataValidationErrorStyleInformation, "Unit", "Not a suggested unit")
		f.AddDataValidation(sheetName, dv)
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addInstructionsSheet(f, fields)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet creates a hidden sheet with field descriptions.
func addInstructionsSheet(f *excelize.File, fields []TemplateField) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", "Estimate Item Import - Instructions")
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	instructionHeaders := []string{"Field Name", "Required?", "Format Rule", "Description", "Example"}
	cols := columnLetters(len(instructionHeaders))
	for i, h := range instructionHeaders {
		cell := fmt.Sprintf("%s3", cols[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}

	for i, field := range fields {
		row := fmt.Sprintf("%d", i+4)
		reqLabel := "Optional"
		if field.AlwaysRequired {
			reqLabel = "Required"
		}
		f.SetCellValue(instSheet, cols[0]+row, field.Label)
		f.SetCellValue(instSheet, cols[1]+row, reqLabel)
		f.SetCellValue(instSheet, cols[2]+row, field.FormatRule)
		f.SetCellValue(instSheet, cols[3]+row, field.Description)
		f.SetCellValue(instSheet, cols[4]+row, field.ExampleValue)
	}

	widths := []float64{20, 12, 20, 45, 25}
	for i, w := range widths {
		f.SetColWidth(instSheet, cols[i], cols[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
