package services

import (
	"testing"
	"time"

	"quotedesk/models"
)

func TestQuoteNumberFormat(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		seq    int
		expect string
	}{
		{"first", 2025, 1, "Q-2025-001"},
		{"sequential", 2025, 4, "Q-2025-004"},
		{"high number", 2026, 999, "Q-2026-999"},
		{"overflow keeps digits", 2026, 1000, "Q-2026-1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQuoteNumber(tt.year, tt.seq)
			if got != tt.expect {
				t.Errorf("formatQuoteNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.expect)
			}
		})
	}
}

func TestNextQuoteNumber(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		if got := NextQuoteNumber(nil, now); got != "Q-2025-001" {
			t.Errorf("NextQuoteNumber(nil) = %q", got)
		}
	})

	t.Run("counts same year only", func(t *testing.T) {
		existing := []models.Quote{
			{QuoteNumber: "Q-2024-001"},
			{QuoteNumber: "Q-2025-001"},
			{QuoteNumber: "Q-2025-002"},
			{QuoteNumber: "custom"},
		}
		if got := NextQuoteNumber(existing, now); got != "Q-2025-003" {
			t.Errorf("NextQuoteNumber() = %q, want Q-2025-003", got)
		}
	})

	t.Run("skips taken numbers", func(t *testing.T) {
		existing := []models.Quote{
			{QuoteNumber: "Q-2025-002"},
		}
		if got := NextQuoteNumber(existing, now); got != "Q-2025-003" {
			t.Errorf("NextQuoteNumber() = %q, want Q-2025-003", got)
		}
	})
}
