// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"quotedesk/collections"
	"quotedesk/models"
	"quotedesk/persistence"
	"quotedesk/store"
)

// FixedNow is the clock used by NewTestStore.
var FixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// NewTestStore opens a store over an in-memory backend with a fixed clock and
// sequential ids. The store is closed when the test finishes.
func NewTestStore(t *testing.T) (*store.Store, *persistence.Memory) {
	t.Helper()

	backend := persistence.NewMemory()
	s, err := store.Open(context.Background(), backend,
		store.WithClock(func() time.Time { return FixedNow }),
		store.WithIDs(SequentialIDs("id")),
	)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s, backend
}

// CreateTestClient adds a client named name and returns it.
func CreateTestClient(t *testing.T, s *store.Store, name string) models.Client {
	t.Helper()

	c, err := s.AddClient(store.ClientInput{Name: name, Email: "ops@example.com"})
	if err != nil {
		t.Fatalf("failed to add test client: %v", err)
	}
	return c
}

// CreateTestEstimate adds an estimate with two items, 2 × 25 and 1 × 100,
// for the client.
func CreateTestEstimate(t *testing.T, s *store.Store, clientID, name string) models.Estimate {
	t.Helper()

	est, err := s.AddEstimate(store.EstimateInput{
		ClientID: clientID,
		Name:     name,
		Items: []models.EstimateItem{
			{Description: "Ceramic tiles", Category: "Materials", Quantity: 2, Unit: "box", CostPerUnit: 25},
			{Description: "Installation", Category: "Labor", Quantity: 1, Unit: "day", CostPerUnit: 100},
		},
	})
	if err != nil {
		t.Fatalf("failed to add test estimate: %v", err)
	}
	return est
}

// CreateTestQuote creates a client, an estimate and a quote from it.
func CreateTestQuote(t *testing.T, s *store.Store) models.Quote {
	t.Helper()

	c := CreateTestClient(t, s, "Acme Corp")
	est := CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")
	q, err := s.CreateQuoteFromEstimate(est.ID, "")
	if err != nil {
		t.Fatalf("failed to create test quote: %v", err)
	}
	return q
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
