package collections_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"quotedesk/collections"
	"quotedesk/models"
	"quotedesk/persistence"
	"quotedesk/services"
	"quotedesk/testhelpers"
)

var seedNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func TestDemoData(t *testing.T) {
	data := collections.DemoData(seedNow)

	if len(data.Clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(data.Clients))
	}
	if len(data.Estimates) != 2 || len(data.Quotes) != 2 {
		t.Fatalf("expected 2 estimates and 2 quotes, got %d and %d", len(data.Estimates), len(data.Quotes))
	}

	wantNumbers := []string{"Q-2025-001", "Q-2025-002"}
	for i, q := range data.Quotes {
		if q.QuoteNumber != wantNumbers[i] {
			t.Errorf("quote %d number = %q, want %q", i, q.QuoteNumber, wantNumbers[i])
		}
		est := data.Estimates[i]
		if q.EstimateID != est.ID {
			t.Errorf("quote %d estimate = %q, want %q", i, q.EstimateID, est.ID)
		}
		// Every quote item must resolve its base cost from the estimate.
		for _, it := range q.Items {
			if _, ok := est.FindItem(it.ID); !ok {
				t.Errorf("quote %d item %q has no estimate item", i, it.ID)
			}
		}
		m := services.ComputeQuoteMetrics(&q, &est)
		if m.TotalProfit <= 0 {
			t.Errorf("quote %d: expected positive profit, got %v", i, m.TotalProfit)
		}
	}

	if data.Quotes[0].Status != models.StatusSent {
		t.Errorf("first quote status = %q, want sent", data.Quotes[0].Status)
	}
	if data.Settings.CompanyInfo.Name != "Northwind Builders" {
		t.Errorf("company name = %q", data.Settings.CompanyInfo.Name)
	}
}

func TestSeed_EmptyBackend(t *testing.T) {
	backend := persistence.NewMemory()

	seeded, err := collections.Seed(context.Background(), backend, seedNow)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if !seeded {
		t.Fatal("expected Seed() to write the demo document")
	}

	blob, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	var data models.AppData
	if err := json.Unmarshal(blob, &data); err != nil {
		t.Fatalf("seeded document is not JSON: %v", err)
	}
	if len(data.Quotes) != 2 {
		t.Errorf("expected 2 seeded quotes, got %d", len(data.Quotes))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	backend := persistence.NewMemory()
	existing := []byte(`{"clients":[]}`)
	if err := backend.Save(context.Background(), existing); err != nil {
		t.Fatal(err)
	}

	seeded, err := collections.Seed(context.Background(), backend, seedNow)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if seeded {
		t.Error("Seed() must not overwrite existing data")
	}
	blob, _ := backend.Load(context.Background())
	if string(blob) != string(existing) {
		t.Errorf("document changed: %s", blob)
	}
}

func TestSeed_PocketBaseBackend(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	backend := persistence.NewPocketBase(app, "seed_test")

	if _, err := collections.Seed(context.Background(), backend, seedNow); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	seeded, err := collections.Seed(context.Background(), backend, seedNow)
	if err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	if seeded {
		t.Error("second Seed() should skip")
	}
}
