package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleQuoteItems(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	first := q.Items[0]

	body := `[{"id":"` + first.ID + `","description":"Tiles","quantity":2,"unit":"box","markupType":"amount","markupValue":5}]`
	rec := serve(t, HandleQuoteItems(s), http.MethodPut, "/api/quotes/"+q.ID+"/items", body, map[string]string{"id": q.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, HandleQuoteMetrics(s), http.MethodGet, "/api/quotes/"+q.ID+"/metrics", "", map[string]string{"id": q.ID})
	var got struct {
		Metrics struct {
			TotalAmount float64 `json:"totalAmount"`
			TotalCost   float64 `json:"totalCost"`
		} `json:"metrics"`
		Health string `json:"health"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.Metrics.TotalAmount != 60 {
		t.Errorf("totalAmount = %v, want 60", got.Metrics.TotalAmount)
	}
	// Cost covers the whole estimate, not only the quoted items.
	if got.Metrics.TotalCost != 150 {
		t.Errorf("totalCost = %v, want 150", got.Metrics.TotalCost)
	}
	if got.Health == "" {
		t.Error("expected a margin health value")
	}
}
