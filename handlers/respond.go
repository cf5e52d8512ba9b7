package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/document"
	"quotedesk/export"
	"quotedesk/store"
)

// errEmptyBody is returned for requests that must carry a JSON body.
var errEmptyBody = errors.New("request body is required")

// readJSON binds the JSON request body into dst. The size cap is PocketBase's
// body limit middleware.
func readJSON(e *core.RequestEvent, dst any) error {
	if e.Request.ContentLength == 0 {
		return errEmptyBody
	}
	if err := e.BindBody(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// respondError maps domain errors to status codes. Unexpected errors are
// logged under the component name and answered with a generic message.
func respondError(e *core.RequestEvent, component string, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return e.JSON(http.StatusBadRequest, map[string]any{"errors": verrs})
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, export.ErrMissingQuote),
		errors.Is(err, export.ErrMissingEstimate),
		errors.Is(err, export.ErrMissingClient):
		return e.String(http.StatusNotFound, err.Error())
	case errors.Is(err, document.ErrUnknownTemplate),
		errors.Is(err, store.ErrInvalidDocument):
		return e.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrClosed):
		return e.String(http.StatusServiceUnavailable, "Shutting down")
	}
	log.Printf("%s: %v", component, err)
	return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// sendFile writes an attachment download.
func sendFile(e *core.RequestEvent, contentType, filename string, blob []byte, inline bool) error {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	return e.Blob(http.StatusOK, contentType, blob)
}
