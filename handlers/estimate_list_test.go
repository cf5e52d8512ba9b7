package handlers

import (
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleEstimateList(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")
	testhelpers.CreateTestEstimate(t, s, c.ID, "Bathroom")

	rec := serve(t, HandleEstimateList(s), http.MethodGet, "/api/estimates", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`"name":"Kitchen Remodel"`, `"name":"Bathroom"`, `"totalCost":150`)
}

func TestHandleEstimateList_Empty(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)

	rec := serve(t, HandleEstimateList(s), http.MethodGet, "/api/estimates", "", nil)

	if body := rec.Body.String(); body != "[]" && body != "[]\n" {
		t.Errorf("expected an empty JSON array, got %q", body)
	}
}
