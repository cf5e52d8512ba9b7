package handlers

import (
	"net/http"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleEstimateView(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	tests := []struct {
		name     string
		id       string
		wantCode int
	}{
		{"existing estimate", est.ID, http.StatusOK},
		{"unknown estimate", "missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, HandleEstimateView(s), http.MethodGet, "/api/estimates/"+tt.id, "", map[string]string{"id": tt.id})
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode == http.StatusOK {
				testhelpers.AssertHTMLContains(t, rec.Body.String(),
					`"name":"Kitchen Remodel"`, `"totalCost":150`, "Ceramic tiles")
			}
		})
	}
}
