package handlers

import (
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleEstimateItems(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	rec := serve(t, HandleEstimateItems(s), http.MethodPut, "/api/estimates/"+est.ID+"/items",
		`[{"description":"Sink","quantity":1,"unit":"pcs","costPerUnit":300}]`, map[string]string{"id": est.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got, _ := s.Estimate(est.ID)
	if len(got.Items) != 1 || got.Items[0].Description != "Sink" || got.Items[0].ID == "" {
		t.Errorf("unexpected items: %+v", got.Items)
	}

	rec = serve(t, HandleEstimateItems(s), http.MethodPut, "/api/estimates/"+est.ID+"/items",
		`[{"description":"","quantity":1,"costPerUnit":1}]`, map[string]string{"id": est.ID})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for blank description, got %d", rec.Code)
	}
}
