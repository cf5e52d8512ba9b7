package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"quotedesk/export"
	"quotedesk/models"
	"quotedesk/testhelpers"
)

func TestHandleTemplateList(t *testing.T) {
	rec := serve(t, HandleTemplateList(), http.MethodGet, "/api/templates", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`"id":"modern"`, `"id":"classic"`, `"id":"bold"`, "Modern Clean")
}

func TestHandleExportPDF(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	ex := export.New(s, nil)

	tests := []struct {
		name        string
		target      string
		wantCode    int
		disposition string
	}{
		{"inline preview", "/quotes/" + q.ID + "/export/pdf?template=classic", http.StatusOK, `inline; filename="Q-2025-001.pdf"`},
		{"download", "/quotes/" + q.ID + "/export/pdf?template=bold&download=1", http.StatusOK, `attachment; filename="Q-2025-001.pdf"`},
		{"unknown template", "/quotes/" + q.ID + "/export/pdf?template=retro", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, HandleExportPDF(ex), http.MethodGet, tt.target, "", map[string]string{"id": q.ID})
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if tt.disposition == "" {
				return
			}
			if got := rec.Header().Get("Content-Disposition"); got != tt.disposition {
				t.Errorf("Content-Disposition = %q, want %q", got, tt.disposition)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
				t.Error("expected a PDF body")
			}
		})
	}

	got, _ := s.Quote(q.ID)
	if got.Status != models.StatusDraft {
		t.Errorf("export without sent=1 changed status to %q", got.Status)
	}
}

func TestHandleExportPDF_MarkSent(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	rec := serve(t, HandleExportPDF(export.New(s, nil)), http.MethodGet,
		"/quotes/"+q.ID+"/export/pdf?sent=1", "", map[string]string{"id": q.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	got, _ := s.Quote(q.ID)
	if got.Status != models.StatusSent {
		t.Errorf("status = %q, want sent", got.Status)
	}
}

func TestHandleExportPDF_MissingClient(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	if err := s.DeleteClient(s.Clients()[0].ID); err != nil {
		t.Fatal(err)
	}

	rec := serve(t, HandleExportPDF(export.New(s, nil)), http.MethodGet,
		"/quotes/"+q.ID+"/export/pdf", "", map[string]string{"id": q.ID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("no document may be produced for a missing client")
	}
}

func TestHandleExportExcelAndReport(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	ex := export.New(s, nil)

	rec := serve(t, HandleExportExcel(ex), http.MethodGet, "/quotes/"+q.ID+"/export/excel", "", map[string]string{"id": q.ID})
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Errorf("excel export: status %d", rec.Code)
	}

	rec = serve(t, HandleMarginReport(ex), http.MethodGet, "/quotes/"+q.ID+"/report/pdf", "", map[string]string{"id": q.ID})
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Errorf("margin report: status %d", rec.Code)
	}

	rec = serve(t, HandleExportExcel(ex), http.MethodGet, "/quotes/missing/export/excel", "", map[string]string{"id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandlePrint(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	ex := export.New(s, nil)

	rec := serve(t, HandlePrint(ex), http.MethodGet, "/quotes/"+q.ID+"/print", "", map[string]string{"id": q.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Q-2025-001", "Acme Corp", "Ceramic tiles", "$168.00", "window.print()")

	rec = serve(t, HandlePrint(ex), http.MethodGet, "/quotes/"+q.ID+"/print?autoprint=0", "", map[string]string{"id": q.ID})
	if strings.Contains(rec.Body.String(), "window.print()") {
		t.Error("autoprint=0 should not open the print dialog")
	}
}
