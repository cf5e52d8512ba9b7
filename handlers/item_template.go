package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleItemTemplateDownload serves the blank item import sheet.
// Route: GET /api/estimates/items/template
func HandleItemTemplateDownload() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateItemTemplate()
		if err != nil {
			log.Printf("item_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}
		filename := fmt.Sprintf("Estimate_Items_Template_%d.xlsx", time.Now().Year())
		return sendFile(e, xlsxContentType, filename, xlsxBytes, false)
	}
}
