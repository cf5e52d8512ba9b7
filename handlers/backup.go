package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotedesk/store"
)

// HandleBackupDownload downloads the whole document as JSON.
// Route: GET /api/backup
func HandleBackupDownload(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blob, err := s.ExportJSON()
		if err != nil {
			return respondError(e, "backup", err)
		}
		filename := fmt.Sprintf("quotedesk-backup-%s.json", time.Now().Format("2006-01-02"))
		return sendFile(e, "application/json", filename, blob, false)
	}
}

// HandleBackupRestore replaces the whole document with the posted backup.
// Route: POST /api/backup
func HandleBackupRestore(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var raw json.RawMessage
		if err := readJSON(e, &raw); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		if err := s.ImportJSON(raw); err != nil {
			return respondError(e, "backup_restore", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleClearAll deletes every client, estimate and quote and resets the settings.
// Route: DELETE /api/backup
func HandleClearAll(s *store.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := s.Clear(); err != nil {
			return respondError(e, "clear_all", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
