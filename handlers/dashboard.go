package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/store"
)

// HandleDashboard returns quote counts per status and the accepted totals.
// Route: GET /api/dashboard
func HandleDashboard(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := s.Snapshot()
		return e.JSON(http.StatusOK, services.Summarize(&data))
	}
}
