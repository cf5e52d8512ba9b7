package handlers

import (
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleClientDelete(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	testhelpers.CreateTestQuote(t, s)
	c := s.Clients()[0]

	rec := serve(t, HandleClientDelete(s), http.MethodDelete, "/api/clients/"+c.ID, "", map[string]string{"id": c.ID})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(s.Clients()) != 0 {
		t.Error("expected client to be deleted")
	}
	if len(s.Quotes()) != 1 {
		t.Error("expected quote to survive client deletion")
	}

	rec = serve(t, HandleClientDelete(s), http.MethodDelete, "/api/clients/"+c.ID, "", map[string]string{"id": c.ID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 on second delete, got %d", rec.Code)
	}
}
