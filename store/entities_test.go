package store_test

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/models"
	"quotedesk/services"
	"quotedesk/store"
	"quotedesk/testhelpers"
)

func ptr[T any](v T) *T { return &v }

func TestAddClient(t *testing.T) {
	tests := []struct {
		name    string
		input   store.ClientInput
		wantErr string
	}{
		{"valid", store.ClientInput{Name: "Acme", Email: "a@acme.test"}, ""},
		{"email optional", store.ClientInput{Name: "Acme"}, ""},
		{"missing name", store.ClientInput{Name: "   "}, "name"},
		{"bad email", store.ClientInput{Name: "Acme", Email: "not-an-email"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testhelpers.NewTestStore(t)
			c, err := s.AddClient(tt.input)
			if tt.wantErr != "" {
				var verrs validation.Errors
				require.ErrorAs(t, err, &verrs)
				assert.Contains(t, verrs, tt.wantErr)
				assert.Empty(t, s.Clients())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "id-1", c.ID)
			assert.Equal(t, []models.Client{c}, s.Clients())
		})
	}
}

func TestUpdateClient(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")

	got, err := s.UpdateClient(c.ID, store.ClientPatch{Contact: ptr("Jane"), Address: ptr("1 Main St")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)
	assert.Equal(t, "Jane", got.Contact)
	assert.Equal(t, "1 Main St", got.Address)

	_, err = s.UpdateClient(c.ID, store.ClientPatch{Name: ptr("")})
	assert.Error(t, err)
	stored, _ := s.Client(c.ID)
	assert.Equal(t, "Acme Corp", stored.Name)

	_, err = s.UpdateClient("missing", store.ClientPatch{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteClient_LeavesEstimatesAndQuotes(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)
	c := s.Clients()[0]

	require.NoError(t, s.DeleteClient(c.ID))
	assert.Empty(t, s.Clients())
	assert.Len(t, s.Estimates(), 1)
	_, err := s.Quote(q.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteClient(c.ID), store.ErrNotFound)
}

func TestAddEstimate(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")

	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")
	assert.Equal(t, c.ID, est.ClientID)
	assert.Equal(t, testhelpers.FixedNow.UnixMilli(), est.CreatedAt)
	require.Len(t, est.Items, 2)
	assert.NotEmpty(t, est.Items[0].ID)
	assert.NotEqual(t, est.Items[0].ID, est.Items[1].ID)

	t.Run("unknown client", func(t *testing.T) {
		_, err := s.AddEstimate(store.EstimateInput{ClientID: "nobody", Name: "X"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
	t.Run("negative cost", func(t *testing.T) {
		_, err := s.AddEstimate(store.EstimateInput{ClientID: c.ID, Name: "X",
			Items: []models.EstimateItem{{Description: "Tiles", Quantity: 1, CostPerUnit: -1}}})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "items.0")
	})
	assert.Len(t, s.Estimates(), 1)
}

func TestUpdateEstimateItems(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	items := append(est.Items[:1:1], models.EstimateItem{Description: "Grout", Quantity: 3, Unit: "bag", CostPerUnit: 8})
	got, err := s.UpdateEstimateItems(est.ID, items)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, est.Items[0].ID, got.Items[0].ID)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.Equal(t, 25.0*2+3*8, services.ComputeEstimateCost(&got))

	_, err = s.UpdateEstimateItems("missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEstimate(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	got, err := s.UpdateEstimate(est.ID, store.EstimatePatch{Name: ptr("Bathroom")})
	require.NoError(t, err)
	assert.Equal(t, "Bathroom", got.Name)
	assert.Len(t, got.Items, 2)

	_, err = s.UpdateEstimate(est.ID, store.EstimatePatch{ClientID: ptr("nobody")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportEstimateItems(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	csv := "Description,Category,Quantity,Unit,Cost Per Unit\n" +
		"Paint,Materials,4,can,30\n" +
		",Materials,1,can,30\n"
	result, err := s.ImportEstimateItems(est.ID, strings.NewReader(csv), "items.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ValidRows)
	assert.Equal(t, 1, result.ErrorRows)

	got, err := s.Estimate(est.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Paint", got.Items[2].Description)
	assert.NotEmpty(t, got.Items[2].ID)

	_, err = s.ImportEstimateItems("missing", strings.NewReader(csv), "items.csv")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportEstimateItems_Windows1252(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	c := testhelpers.CreateTestClient(t, s, "Acme Corp")
	est := testhelpers.CreateTestEstimate(t, s, c.ID, "Kitchen Remodel")

	csv := "Description,Quantity,Cost Per Unit\n" + strings.Repeat("a", 39) + "\xe9,1,10\n"
	_, err := s.ImportEstimateItems(est.ID, strings.NewReader(csv), "items.csv")
	require.NoError(t, err)

	got, err := s.Estimate(est.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, strings.Repeat("a", 39)+"\u00e9", got.Items[2].Description)
}

func TestCreateQuoteFromEstimate(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	_, err := s.UpdateSettings(store.SettingsPatch{
		DefaultTaxRate: ptr(8.0),
		CompanyInfo:    &models.CompanyInfo{Name: "Northwind", BrandColor: "#1a365d"},
	})
	require.NoError(t, err)

	q := testhelpers.CreateTestQuote(t, s)
	est, _ := s.Estimate(q.EstimateID)

	assert.Equal(t, "Quote for Kitchen Remodel", q.Name)
	assert.Equal(t, models.StatusDraft, q.Status)
	assert.Equal(t, 8.0, q.TaxRate)
	assert.Equal(t, 30, q.ExpiryDays)
	assert.Equal(t, "Q-2025-001", q.QuoteNumber)
	assert.Equal(t, "Northwind", q.CompanyInfo.Name)
	require.Len(t, q.Items, len(est.Items))
	for i, it := range q.Items {
		assert.Equal(t, est.Items[i].ID, it.ID)
		assert.Equal(t, est.Items[i].CostPerUnit, services.EffectiveUnitPrice(it, &est))
	}

	second, err := s.CreateQuoteFromEstimate(est.ID, "  Revised ")
	require.NoError(t, err)
	assert.Equal(t, "Revised", second.Name)
	assert.Equal(t, "Q-2025-002", second.QuoteNumber)

	_, err = s.CreateQuoteFromEstimate("missing", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateQuote(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	got, err := s.UpdateQuote(q.ID, store.QuotePatch{
		Discount:     ptr(10.0),
		DiscountType: ptr(models.DiscountPercentage),
		Notes:        ptr("Deliver on Monday"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Discount)
	assert.Equal(t, models.DiscountPercentage, got.DiscountType)
	assert.Equal(t, "Deliver on Monday", got.Notes)
	assert.Equal(t, q.Name, got.Name)

	tests := []struct {
		name  string
		patch store.QuotePatch
	}{
		{"negative tax", store.QuotePatch{TaxRate: ptr(-1.0)}},
		{"negative expiry", store.QuotePatch{ExpiryDays: ptr(-3)}},
		{"blank name", store.QuotePatch{Name: ptr(" ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateQuote(q.ID, tt.patch)
			assert.Error(t, err)
			stored, _ := s.Quote(q.ID)
			assert.Equal(t, got, stored)
		})
	}
}

func TestUpdateQuoteItems(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	items := q.Items
	items[0].MarkupType = models.MarkupAmount
	items[0].MarkupValue = 5
	items = append(items, models.QuoteItem{Description: "Extra", Quantity: 1, MarkupValue: 10})

	got, err := s.UpdateQuoteItems(q.ID, items)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.NotEmpty(t, got.Items[2].ID)

	est, _ := s.Estimate(q.EstimateID)
	assert.Equal(t, 30.0, services.EffectiveUnitPrice(got.Items[0], &est))
	assert.Equal(t, 0.0, services.EffectiveUnitPrice(got.Items[2], &est))

	_, err = s.UpdateQuoteItems(q.ID, []models.QuoteItem{{Quantity: -1}})
	assert.Error(t, err)
}

func TestSetQuoteStatus(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)
	q := testhelpers.CreateTestQuote(t, s)

	for _, st := range []models.QuoteStatus{models.StatusAccepted, models.StatusDraft, models.StatusDeclined} {
		got, err := s.SetQuoteStatus(q.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	_, err := s.SetQuoteStatus(q.ID, "archived")
	assert.Error(t, err)
	_, err = s.SetQuoteStatus("missing", models.StatusSent)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateSettings(t *testing.T) {
	s, _ := testhelpers.NewTestStore(t)

	got, err := s.UpdateSettings(store.SettingsPatch{Currency: ptr(" eur "), PreparerName: ptr("Dana")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "Dana", got.PreparerName)
	assert.Equal(t, 12.0, got.DefaultTaxRate)

	tests := []struct {
		name  string
		patch store.SettingsPatch
		field string
	}{
		{"unsupported currency", store.SettingsPatch{Currency: ptr("XYZ")}, "currency"},
		{"negative tax", store.SettingsPatch{DefaultTaxRate: ptr(-5.0)}, "defaultTaxRate"},
		{"negative expiry", store.SettingsPatch{DefaultExpiryDays: ptr(-1)}, "defaultExpiryDays"},
		{"bad brand color", store.SettingsPatch{CompanyInfo: &models.CompanyInfo{BrandColor: "blue"}}, "companyInfo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateSettings(tt.patch)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
			assert.Equal(t, got, s.Settings())
		})
	}
}
