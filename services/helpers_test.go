package services

import (
	"bytes"
	"time"

	"quotedesk/models"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// sampleQuote returns the kitchen remodel fixture: two categories, one
// percentage and one amount markup, 10% percentage discount and 10% tax.
func sampleQuote() (*models.Quote, *models.Estimate, *models.Client) {
	created := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC).UnixMilli()
	client := &models.Client{ID: "c1", Name: "Acme Homes", Email: "ops@acme.test", Address: "1 Main St"}
	est := &models.Estimate{
		ID:        "e1",
		ClientID:  "c1",
		CreatedAt: created,
		Name:      "Kitchen",
		Items: []models.EstimateItem{
			{ID: "i1", Description: "Cabinets", Category: "Materials", Quantity: 2, Unit: "set", CostPerUnit: 40},
			{ID: "i2", Description: "Install", Category: "Labor", Quantity: 1, Unit: "day", CostPerUnit: 20},
		},
	}
	q := &models.Quote{
		ID:           "q1",
		EstimateID:   "e1",
		CreatedAt:    created,
		Name:         "Quote for Kitchen",
		Status:       models.StatusDraft,
		QuoteNumber:  "Q-2025-001",
		ExpiryDays:   30,
		TaxRate:      10,
		Discount:     10,
		DiscountType: models.DiscountPercentage,
		Items: []models.QuoteItem{
			{ID: "i1", Description: "Cabinets", Category: "Materials", Quantity: 2, Unit: "set", MarkupType: models.MarkupPercentage, MarkupValue: 25},
			{ID: "i2", Description: "Install", Category: "Labor", Quantity: 1, Unit: "day", MarkupType: models.MarkupAmount, MarkupValue: 10},
		},
	}
	return q, est, client
}
