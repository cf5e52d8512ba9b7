package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e
}

// serve runs handler on a request with the given path values and JSON body.
func serve(t *testing.T, handler func(*core.RequestEvent) error, method, target, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}
