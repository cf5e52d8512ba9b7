package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/store"
)

// HandleEstimateImport appends the valid rows of an uploaded CSV or XLSX file
// and reports the rejected ones.
// Route: POST /api/estimates/{id}/items/import
func HandleEstimateImport(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := s.ImportEstimateItems(e.Request.PathValue("id"), file, header.Filename)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return respondError(e, "estimate_import", err)
			}
			log.Printf("estimate_import: %v", err)
			return e.String(http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, result)
	}
}

// HandleImportErrorReport turns posted import errors into a spreadsheet.
// Route: POST /api/estimates/items/import/errors
func HandleImportErrorReport() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errs []services.ValidationError
		if err := readJSON(e, &errs); err != nil {
			return e.String(http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errs)
		if err != nil {
			log.Printf("error_report: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		filename := fmt.Sprintf("Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		return sendFile(e, xlsxContentType, filename, xlsxBytes, false)
	}
}
