// Package models holds the quoting domain types and their persisted JSON shape.
package models

import "time"

// QuoteStatus is a free label on a quote. Any transition is allowed.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusAccepted QuoteStatus = "accepted"
	StatusDeclined QuoteStatus = "declined"
)

// Statuses lists every quote status in display order.
var Statuses = []QuoteStatus{StatusDraft, StatusSent, StatusAccepted, StatusDeclined}

// Valid reports whether s is one of the known statuses.
func (s QuoteStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// MarkupType selects how an item's markup value is applied to its base cost.
type MarkupType string

const (
	MarkupPercentage MarkupType = "percentage"
	MarkupAmount     MarkupType = "amount"
)

// Normalize maps empty or unknown markup types to percentage.
func (m MarkupType) Normalize() MarkupType {
	if m == MarkupAmount {
		return MarkupAmount
	}
	return MarkupPercentage
}

// DiscountType selects how a quote's discount is applied to its total amount.
type DiscountType string

const (
	DiscountAmount     DiscountType = "amount"
	DiscountPercentage DiscountType = "percentage"
)

// Normalize maps empty or unknown discount types to amount.
func (d DiscountType) Normalize() DiscountType {
	if d == DiscountPercentage {
		return DiscountPercentage
	}
	return DiscountAmount
}

// Client is a customer that estimates are prepared for.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Company string `json:"company,omitempty"`
}

// EstimateItem is one raw-cost line of an estimate.
type EstimateItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	CostPerUnit float64 `json:"costPerUnit"`
}

// Estimate is a draft cost breakdown for a client.
type Estimate struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"clientId"`
	CreatedAt int64          `json:"createdAt"` // unix milliseconds
	Name      string         `json:"name"`
	Items     []EstimateItem `json:"items"`
}

// FindItem returns the estimate item with the given id.
func (e *Estimate) FindItem(id string) (EstimateItem, bool) {
	if e == nil {
		return EstimateItem{}, false
	}
	for _, it := range e.Items {
		if it.ID == id {
			return it, true
		}
	}
	return EstimateItem{}, false
}

// QuoteItem is a priced line of a quote. Its ID matches the estimate item it was
// copied from, which is how the base cost is resolved.
type QuoteItem struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	UnitPrice   float64    `json:"unitPrice"` // legacy, not consulted by pricing
	MarkupType  MarkupType `json:"markupType,omitempty"`
	MarkupValue float64    `json:"markupValue,omitempty"`
}

// CompanyInfo is the issuing company's branding.
type CompanyInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	LogoBase64 string `json:"logoBase64,omitempty"`
	BrandColor string `json:"brandColor"`
	Contact    string `json:"contact,omitempty"`
}

// Quote is a client-facing priced document derived from one estimate.
type Quote struct {
	ID            string       `json:"id"`
	EstimateID    string       `json:"estimateId"`
	CreatedAt     int64        `json:"createdAt"` // unix milliseconds
	Name          string       `json:"name"`
	Status        QuoteStatus  `json:"status"`
	Items         []QuoteItem  `json:"items"`
	TaxRate       float64      `json:"taxRate"`
	Discount      float64      `json:"discount"`
	DiscountType  DiscountType `json:"discountType"`
	Notes         string       `json:"notes"`
	Terms         string       `json:"terms"`
	MarkupPercent *float64     `json:"markupPercent,omitempty"` // legacy global markup
	CompanyInfo   CompanyInfo  `json:"companyInfo"`
	QuoteNumber   string       `json:"quoteNumber"`
	ExpiryDays    int          `json:"expiryDays"`
}

// Created returns the creation time of the quote.
func (q *Quote) Created() time.Time {
	return time.UnixMilli(q.CreatedAt)
}

// ValidUntil returns createdAt plus expiryDays whole days.
func (q *Quote) ValidUntil() time.Time {
	return time.UnixMilli(q.CreatedAt + int64(q.ExpiryDays)*24*int64(time.Hour/time.Millisecond))
}

// AppSettings are the process-wide preferences.
type AppSettings struct {
	DefaultTaxRate    float64     `json:"defaultTaxRate"`
	DefaultExpiryDays int         `json:"defaultExpiryDays"`
	CompanyInfo       CompanyInfo `json:"companyInfo"`
	PreparerName      string      `json:"preparerName,omitempty"`
	Currency          string      `json:"currency,omitempty"` // ISO 4217 code
}

// CurrencyOrDefault returns the configured currency, USD when unset.
func (s AppSettings) CurrencyOrDefault() string {
	if s.Currency == "" {
		return DefaultCurrency
	}
	return s.Currency
}

// AppData is the whole persisted application document.
type AppData struct {
	Clients   []Client    `json:"clients"`
	Estimates []Estimate  `json:"estimates"`
	Quotes    []Quote     `json:"quotes"`
	Settings  AppSettings `json:"settings"`
}

const (
	DefaultCurrency   = "USD"
	DefaultBrandColor = "#2563eb"
)

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() AppSettings {
	return AppSettings{
		DefaultTaxRate:    12,
		DefaultExpiryDays: 30,
		CompanyInfo: CompanyInfo{
			BrandColor: DefaultBrandColor,
		},
		Currency: DefaultCurrency,
	}
}

// NewAppData returns an empty document with default settings.
func NewAppData() AppData {
	return AppData{
		Clients:   []Client{},
		Estimates: []Estimate{},
		Quotes:    []Quote{},
		Settings:  DefaultSettings(),
	}
}
