package handlers

import (
	"net/http"
	"testing"

	"quotedesk/models"
	"quotedesk/testhelpers"
)

func TestHandleQuoteStatus(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	tests := []struct {
		name   string
		body   string
		want   int
		status models.QuoteStatus
	}{
		{"accept", `{"status":"accepted"}`, http.StatusOK, models.StatusAccepted},
		{"back to draft", `{"status":"draft"}`, http.StatusOK, models.StatusDraft},
		{"unknown status", `{"status":"archived"}`, http.StatusBadRequest, models.StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, HandleQuoteStatus(s), http.MethodPost, "/api/quotes/"+q.ID+"/status", tt.body, map[string]string{"id": q.ID})
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
			got, _ := s.Quote(q.ID)
			if got.Status != tt.status {
				t.Errorf("quote status = %q, want %q", got.Status, tt.status)
			}
		})
	}
}
