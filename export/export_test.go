package export_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/document"
	"quotedesk/export"
	"quotedesk/models"
	"quotedesk/store"
	"quotedesk/testhelpers"
)

func ptr[T any](v T) *T { return &v }

func TestExport(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	e := export.New(s, nil)

	for _, tmpl := range []string{"modern", "classic", "bold", ""} {
		t.Run("template "+tmpl, func(t *testing.T) {
			res, err := e.Export(context.Background(), export.Request{QuoteID: q.ID, TemplateID: tmpl})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(res.Blob, []byte("%PDF-")))
			assert.Equal(t, 1, res.Pages)
			assert.Equal(t, "Q-2025-001.pdf", res.Filename)
			assert.Equal(t, "application/pdf", res.ContentType)
		})
	}
}

func TestExport_RefusesMissingEntities(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	e := export.New(s, nil)

	_, err := e.Export(context.Background(), export.Request{QuoteID: "nope"})
	assert.ErrorIs(t, err, export.ErrMissingQuote)

	q := testhelpers.CreateTestQuote(t, s)
	require.NoError(t, s.DeleteClient(s.Clients()[0].ID))
	_, err = e.Export(context.Background(), export.Request{QuoteID: q.ID})
	assert.ErrorIs(t, err, export.ErrMissingClient)

	require.NoError(t, s.ImportJSON([]byte(`{"quotes":[{"id":"q1","estimateId":"gone","name":"Orphan"}]}`)))
	_, err = e.Export(context.Background(), export.Request{QuoteID: "q1"})
	assert.ErrorIs(t, err, export.ErrMissingEstimate)
}

func TestExport_UnknownTemplate(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	_, err := export.New(s, nil).Export(context.Background(), export.Request{QuoteID: q.ID, TemplateID: "fancy"})
	assert.ErrorIs(t, err, document.ErrUnknownTemplate)
}

func TestExport_ReusesRenderUntilDataChanges(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	e := export.New(s, nil)
	req := export.Request{QuoteID: q.ID, TemplateID: "bold"}

	first, err := e.Export(context.Background(), req)
	require.NoError(t, err)
	again, err := e.Export(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = s.UpdateQuote(q.ID, store.QuotePatch{Notes: ptr("Bring ladders")})
	require.NoError(t, err)
	changed, err := e.Export(context.Background(), req)
	require.NoError(t, err)
	assert.NotSame(t, first, changed)
}

func TestExport_ConcurrentCallersShareOneResult(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	e := export.New(s, nil)

	results := make([]*export.Result, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := e.Export(context.Background(), export.Request{QuoteID: q.ID, TemplateID: "classic"})
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestExport_CanceledContext(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := export.New(s, nil).Export(ctx, export.Request{QuoteID: q.ID})
	// The render may win the race against the closed context.
	if err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
}

// panickingMeasurer fails every layout.
type panickingMeasurer struct{}

func (panickingMeasurer) StringWidth(string, document.Font) float64 {
	panic("measure: font table missing")
}

func TestExport_RecoversLayoutPanic(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	e := export.New(s, panickingMeasurer{})

	for i := 0; i < 2; i++ {
		res, err := e.Export(context.Background(), export.Request{QuoteID: q.ID})
		require.ErrorIs(t, err, export.ErrRender)
		assert.Contains(t, err.Error(), "font table missing")
		assert.Nil(t, res)
	}
}

func TestExport_InvalidUTF8InLongDescription(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	items := q.Items
	items[0].Description = strings.Repeat("a", 39) + "\xe9"
	_, err := s.UpdateQuoteItems(q.ID, items)
	require.NoError(t, err)

	for _, tmpl := range []string{"modern", "classic", "bold"} {
		res, err := export.New(s, nil).Export(context.Background(), export.Request{QuoteID: q.ID, TemplateID: tmpl})
		require.NoError(t, err, tmpl)
		assert.True(t, bytes.HasPrefix(res.Blob, []byte("%PDF-")))
	}
}

func TestMarkSent(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	got, err := export.New(s, nil).MarkSent(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, got.Status)
}

func TestPrintData(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	_, err := s.UpdateQuote(q.ID, store.QuotePatch{Terms: ptr("Net 30; No refunds")})
	require.NoError(t, err)
	e := export.New(s, nil)

	d, err := e.PrintData(q.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Q-2025-001", d.Title)
	assert.Equal(t, "Acme Corp", d.ClientName)
	assert.Equal(t, "$150.00", d.Subtotal)
	assert.Equal(t, "Tax (12%)", d.TaxLabel)
	assert.Equal(t, "$18.00", d.Tax)
	assert.Equal(t, "$168.00", d.GrandTotal)
	assert.Equal(t, []string{"Net 30", "No refunds"}, d.Terms)
	assert.True(t, d.AutoPrint)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "$25.00", d.Items[0].UnitPrice)
	assert.Equal(t, "$50.00", d.Items[0].LineTotal)

	require.NoError(t, s.DeleteClient(s.Clients()[0].ID))
	d, err = e.PrintData(q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", d.ClientName)

	_, err = e.PrintData("nope", false)
	assert.ErrorIs(t, err, export.ErrMissingQuote)
}

func TestSpreadsheetAndMarginReport(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	e := export.New(s, nil)

	xlsx, err := e.Spreadsheet(q.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Blob, []byte("PK")))
	assert.Equal(t, "Q-2025-001.xlsx", xlsx.Filename)

	report, err := e.MarginReport(q.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report.Blob, []byte("%PDF-")))
	assert.Equal(t, "margin-Q-2025-001.pdf", report.Filename)

	_, err = e.Spreadsheet("nope")
	assert.ErrorIs(t, err, export.ErrMissingQuote)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		quote models.Quote
		want  string
	}{
		{"quote number", models.Quote{QuoteNumber: "Q-2025-004", Name: "Kitchen"}, "Q-2025-004.pdf"},
		{"name fallback", models.Quote{Name: "Kitchen Remodel"}, "Kitchen-Remodel.pdf"},
		{"unsafe characters", models.Quote{QuoteNumber: "../etc/passwd"}, "..-etc-passwd.pdf"},
		{"empty", models.Quote{}, "quote.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := export.Filename(&tt.quote, "pdf"); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
