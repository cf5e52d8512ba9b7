package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"quotedesk/models"
	"quotedesk/persistence"
	"quotedesk/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	id          string
	description string
	category    string
	qty         float64
	unit        string
	cost        float64
	markupType  models.MarkupType
	markup      float64
}

type estimateDef struct {
	id       string
	clientID string
	name     string
	items    []itemDef
}

// ── Seed data ────────────────────────────────────────────────────────────

var demoClients = []models.Client{
	{ID: "demo-client-1", Name: "Harbor View Cafe", Contact: "Mia Santos", Email: "mia@harborview.test", Address: "21 Pier Road, Port Town", Company: "Harbor View Hospitality"},
	{ID: "demo-client-2", Name: "Greenleaf Dental", Contact: "Dr. Omar Reyes", Email: "frontdesk@greenleaf.test", Address: "4 Orchard Lane, Hillside"},
}

var demoEstimates = []estimateDef{
	{
		id:       "demo-estimate-1",
		clientID: "demo-client-1",
		name:     "Cafe Interior Refresh",
		items: []itemDef{
			{"demo-item-1", "Oak veneer counter top", "Materials", 1, "set", 1850, models.MarkupPercentage, 25},
			{"demo-item-2", "Pendant lights", "Materials", 6, "pcs", 95, models.MarkupPercentage, 30},
			{"demo-item-3", "Wall paint, two coats", "Materials", 40, "m²", 6.5, models.MarkupPercentage, 20},
			{"demo-item-4", "Carpentry crew", "Labor", 4, "day", 520, models.MarkupAmount, 80},
			{"demo-item-5", "Electrical install", "Labor", 1, "day", 610, models.MarkupAmount, 90},
		},
	},
	{
		id:       "demo-estimate-2",
		clientID: "demo-client-2",
		name:     "Reception Signage",
		items: []itemDef{
			{"demo-item-6", "Acrylic sign panel", "Signage", 2, "pcs", 240, models.MarkupPercentage, 35},
			{"demo-item-7", "Mounting and install", "Labor", 3, "hour", 45, models.MarkupPercentage, 40},
		},
	},
}

const demoTerms = "50% deposit due on acceptance; Balance due on completion\nPrices valid for 30 days"

// DemoData builds the sample document: two clients, their estimates and a
// quote for each estimate.
func DemoData(now time.Time) models.AppData {
	data := models.NewAppData()
	data.Settings.CompanyInfo = models.CompanyInfo{
		Name:       "Northwind Builders",
		Address:    "9 Harbor Rd, Port Town",
		Contact:    "hello@northwind.test • 555-0100",
		BrandColor: "#1a365d",
	}
	data.Settings.PreparerName = "Dana Cruz"
	data.Clients = append(data.Clients, demoClients...)

	for i, def := range demoEstimates {
		created := now.Add(-time.Duration(len(demoEstimates)-i) * 24 * time.Hour).UnixMilli()
		est := models.Estimate{ID: def.id, ClientID: def.clientID, CreatedAt: created, Name: def.name}
		q := models.Quote{
			ID:           fmt.Sprintf("demo-quote-%d", i+1),
			EstimateID:   def.id,
			CreatedAt:    created,
			Name:         "Quote for " + def.name,
			Status:       models.StatusDraft,
			TaxRate:      data.Settings.DefaultTaxRate,
			DiscountType: models.DiscountAmount,
			Terms:        demoTerms,
			CompanyInfo:  data.Settings.CompanyInfo,
			QuoteNumber:  services.NextQuoteNumber(data.Quotes, now),
			ExpiryDays:   data.Settings.DefaultExpiryDays,
		}
		for _, it := range def.items {
			est.Items = append(est.Items, models.EstimateItem{
				ID: it.id, Description: it.description, Category: it.category,
				Quantity: it.qty, Unit: it.unit, CostPerUnit: it.cost,
			})
			q.Items = append(q.Items, models.QuoteItem{
				ID: it.id, Description: it.description, Category: it.category,
				Quantity: it.qty, Unit: it.unit, UnitPrice: it.cost,
				MarkupType: it.markupType, MarkupValue: it.markup,
			})
		}
		if i == 0 {
			q.Status = models.StatusSent
			q.Discount = 5
			q.DiscountType = models.DiscountPercentage
			q.Notes = "Work scheduled outside opening hours."
		}
		data.Estimates = append(data.Estimates, est)
		data.Quotes = append(data.Quotes, q)
	}
	return data
}

// Seed saves the demo document when the backend holds nothing yet. It reports
// whether it wrote anything.
func Seed(ctx context.Context, backend persistence.Backend, now time.Time) (bool, error) {
	_, err := backend.Load(ctx)
	if err == nil {
		log.Println("collections: data already present, skipping seed")
		return false, nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return false, fmt.Errorf("seed: load: %w", err)
	}

	blob, err := json.Marshal(DemoData(now))
	if err != nil {
		return false, fmt.Errorf("seed: marshal: %w", err)
	}
	if err := backend.Save(ctx, blob); err != nil {
		return false, fmt.Errorf("seed: save: %w", err)
	}
	log.Println("collections: seeded demo data")
	return true, nil
}
