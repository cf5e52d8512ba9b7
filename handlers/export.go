package handlers

import (
	"bytes"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/document"
	"quotedesk/export"
	"quotedesk/templates"
)

type templateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleTemplateList lists the PDF templates for the export picker.
// Route: GET /api/templates
func HandleTemplateList() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var out []templateInfo
		for _, t := range document.Templates() {
			out = append(out, templateInfo{ID: t.ID, Name: t.Name, Description: t.Description})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleExportPDF renders the quote with the chosen template. With ?sent=1
// the quote is marked as sent once the PDF is ready; ?download=1 forces an
// attachment instead of an inline preview.
// Route: GET /quotes/{id}/export/pdf
func HandleExportPDF(ex *export.Exporter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		query := e.Request.URL.Query()

		res, err := ex.Export(e.Request.Context(), export.Request{
			QuoteID:    quoteID,
			TemplateID: query.Get("template"),
		})
		if err != nil {
			return respondError(e, "export_pdf", err)
		}

		if query.Get("sent") == "1" {
			if _, err := ex.MarkSent(quoteID); err != nil {
				return respondError(e, "export_pdf", err)
			}
		}
		return sendFile(e, res.ContentType, res.Filename, res.Blob, query.Get("download") != "1")
	}
}

// HandleExportExcel downloads the quote as a spreadsheet.
// Route: GET /quotes/{id}/export/excel
func HandleExportExcel(ex *export.Exporter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		res, err := ex.Spreadsheet(e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, "export_excel", err)
		}
		return sendFile(e, res.ContentType, res.Filename, res.Blob, false)
	}
}

// HandleMarginReport downloads the internal cost and margin report.
// Route: GET /quotes/{id}/report/pdf
func HandleMarginReport(ex *export.Exporter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		res, err := ex.MarginReport(e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, "margin_report", err)
		}
		return sendFile(e, res.ContentType, res.Filename, res.Blob, false)
	}
}

// HandlePrint serves the printable HTML page of a quote. The print dialog
// opens on load unless ?autoprint=0.
// Route: GET /quotes/{id}/print
func HandlePrint(ex *export.Exporter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := ex.PrintData(e.Request.PathValue("id"), e.Request.URL.Query().Get("autoprint") != "0")
		if err != nil {
			return respondError(e, "print", err)
		}

		var buf bytes.Buffer
		if err := templates.QuotePrintPage(data).Render(e.Request.Context(), &buf); err != nil {
			return respondError(e, "print", err)
		}
		return e.HTML(http.StatusOK, buf.String())
	}
}
