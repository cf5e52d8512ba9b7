package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/store"
)

// HandleSettingsView returns the settings.
// Route: GET /api/settings
func HandleSettingsView(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, s.Settings())
	}
}

// HandleSettingsUpdate merges the posted fields into the settings.
// Route: PATCH /api/settings
func HandleSettingsUpdate(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p store.SettingsPatch
		if err := readJSON(e, &p); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		settings, err := s.UpdateSettings(p)
		if err != nil {
			return respondError(e, "settings_update", err)
		}
		return e.JSON(http.StatusOK, settings)
	}
}

// HandleOptions returns the choices offered by the editing forms.
// Route: GET /api/options
func HandleOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"units":      services.UnitOptions,
			"currencies": services.CurrencyOptions(),
			"statuses":   services.StatusOptions,
			"itemFields": services.ItemTemplateFields(),
		})
	}
}
