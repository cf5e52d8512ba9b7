package handlers

import (
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleQuoteFromEstimate(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	rec := serve(t, HandleQuoteFromEstimate(s), http.MethodPost, "/api/estimates/"+est.ID+"/quotes", "", map[string]string{"id": est.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `"name":"Quote for Kitchen Remodel"`, `"quoteNumber":"Q-2025-001"`, `"status":"draft"`)

	rec = serve(t, HandleQuoteFromEstimate(s), http.MethodPost, "/api/estimates/"+est.ID+"/quotes", `{"name":"Option B"}`, map[string]string{"id": est.ID})
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `"name":"Option B"`, `"quoteNumber":"Q-2025-002"`)

	rec = serve(t, HandleQuoteFromEstimate(s), http.MethodPost, "/api/estimates/missing/quotes", "", map[string]string{"id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
