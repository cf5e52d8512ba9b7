package services

import (
	"fmt"
	"strings"
	"time"

	"quotedesk/models"
)

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(year, sequence int) string {
	return fmt.Sprintf("Q-%d-%03d", year, sequence)
}

// NextQuoteNumber returns the next quote number for the year of now.
// Format: Q-{year}-{sequence}
//   - year: calendar year of creation
//   - sequence: 3-digit zero-padded, counted over existing quotes of that year
//
// Hand-edited numbers that do not carry the year prefix are not counted.
func NextQuoteNumber(existing []models.Quote, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("Q-%d-", year)

	seq := 1
	for _, q := range existing {
		if strings.HasPrefix(q.QuoteNumber, prefix) {
			seq++
		}
	}

	// A deleted or renumbered quote can leave a gap that collides; skip forward.
	taken := make(map[string]bool, len(existing))
	for _, q := range existing {
		taken[q.QuoteNumber] = true
	}
	for taken[formatQuoteNumber(year, seq)] {
		seq++
	}
	return formatQuoteNumber(year, seq)
}
