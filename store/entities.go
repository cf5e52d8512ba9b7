package store

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"quotedesk/models"
	"quotedesk/services"
)

// ── Clients ──────────────────────────────────────────────────────────────

// ClientInput is the editable part of a client.
type ClientInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Company string `json:"company"`
}

func (in ClientInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, is.EmailFormat),
	)
}

// ClientPatch changes the fields that are set.
type ClientPatch struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Company *string `json:"company"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Clients)
}

func (s *Store) Client(id string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, notFound("client", id)
}

func (s *Store) AddClient(in ClientInput) (models.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return models.Client{}, err
	}
	c := models.Client{ID: s.newID(), Name: in.Name, Contact: in.Contact, Email: in.Email, Address: in.Address, Company: in.Company}
	err := s.mutate(func(d *models.AppData) error {
		d.Clients = append(d.Clients, c)
		return nil
	})
	return c, err
}

func (s *Store) UpdateClient(id string, p ClientPatch) (models.Client, error) {
	var out models.Client
	err := s.mutate(func(d *models.AppData) error {
		for i := range d.Clients {
			c := &d.Clients[i]
			if c.ID != id {
				continue
			}
			in := ClientInput{Name: c.Name, Contact: c.Contact, Email: c.Email, Address: c.Address, Company: c.Company}
			setIf(&in.Name, p.Name)
			setIf(&in.Contact, p.Contact)
			setIf(&in.Email, p.Email)
			setIf(&in.Address, p.Address)
			setIf(&in.Company, p.Company)
			in.Name = strings.TrimSpace(in.Name)
			if err := in.Validate(); err != nil {
				return err
			}
			c.Name, c.Contact, c.Email, c.Address, c.Company = in.Name, in.Contact, in.Email, in.Address, in.Company
			out = *c
			return nil
		}
		return notFound("client", id)
	})
	return out, err
}

// DeleteClient removes the client only. Its estimates and quotes keep the
// dangling reference and display the client as "Unknown".
func (s *Store) DeleteClient(id string) error {
	return s.mutate(func(d *models.AppData) error {
		for i, c := range d.Clients {
			if c.ID == id {
				d.Clients = append(d.Clients[:i], d.Clients[i+1:]...)
				return nil
			}
		}
		return notFound("client", id)
	})
}

// ── Estimates ────────────────────────────────────────────────────────────

// EstimateInput creates an estimate for an existing client.
type EstimateInput struct {
	ClientID string                `json:"clientId"`
	Name     string                `json:"name"`
	Items    []models.EstimateItem `json:"items"`
}

func (in EstimateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.Required),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
	)
}

// EstimatePatch changes the fields that are set.
type EstimatePatch struct {
	Name     *string `json:"name"`
	ClientID *string `json:"clientId"`
}

func validateEstimateItems(items []models.EstimateItem) error {
	errs := validation.Errors{}
	for i, it := range items {
		err := validation.ValidateStruct(&it,
			validation.Field(&it.Description, validation.Required),
			validation.Field(&it.Quantity, validation.Min(0.0)),
			validation.Field(&it.CostPerUnit, validation.Min(0.0)),
		)
		if err != nil {
			errs[fmt.Sprintf("items.%d", i)] = err
		}
	}
	return errs.Filter()
}

// withEstimateIDs gives items without an id a fresh one.
func (s *Store) withEstimateIDs(items []models.EstimateItem) []models.EstimateItem {
	out := make([]models.EstimateItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = s.newID()
		}
		if it.Unit == "" {
			it.Unit = "unit"
		}
		out[i] = it
	}
	return out
}

func hasClient(d *models.AppData, id string) bool {
	for _, c := range d.Clients {
		if c.ID == id {
			return true
		}
	}
	return false
}

func findEstimate(d *models.AppData, id string) (*models.Estimate, error) {
	for i := range d.Estimates {
		if d.Estimates[i].ID == id {
			return &d.Estimates[i], nil
		}
	}
	return nil, notFound("estimate", id)
}

func (s *Store) Estimates() []models.Estimate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Estimates)
}

func (s *Store) Estimate(id string) (models.Estimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := findEstimate(&s.data, id)
	if err != nil {
		return models.Estimate{}, err
	}
	return clone(*e), nil
}

func (s *Store) AddEstimate(in EstimateInput) (models.Estimate, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return models.Estimate{}, err
	}
	if err := validateEstimateItems(in.Items); err != nil {
		return models.Estimate{}, err
	}
	est := models.Estimate{
		ID:        s.newID(),
		ClientID:  in.ClientID,
		CreatedAt: s.now().UnixMilli(),
		Name:      in.Name,
		Items:     s.withEstimateIDs(in.Items),
	}
	err := s.mutate(func(d *models.AppData) error {
		if !hasClient(d, in.ClientID) {
			return notFound("client", in.ClientID)
		}
		d.Estimates = append(d.Estimates, est)
		return nil
	})
	return clone(est), err
}

func (s *Store) UpdateEstimate(id string, p EstimatePatch) (models.Estimate, error) {
	var out models.Estimate
	err := s.mutate(func(d *models.AppData) error {
		e, err := findEstimate(d, id)
		if err != nil {
			return err
		}
		in := EstimateInput{ClientID: e.ClientID, Name: e.Name}
		setIf(&in.Name, p.Name)
		setIf(&in.ClientID, p.ClientID)
		in.Name = strings.TrimSpace(in.Name)
		if err := in.Validate(); err != nil {
			return err
		}
		if in.ClientID != e.ClientID && !hasClient(d, in.ClientID) {
			return notFound("client", in.ClientID)
		}
		e.Name, e.ClientID = in.Name, in.ClientID
		out = clone(*e)
		return nil
	})
	return out, err
}

// UpdateEstimateItems replaces the estimate's items. Items without an id get one.
func (s *Store) UpdateEstimateItems(id string, items []models.EstimateItem) (models.Estimate, error) {
	if err := validateEstimateItems(items); err != nil {
		return models.Estimate{}, err
	}
	items = s.withEstimateIDs(items)
	var out models.Estimate
	err := s.mutate(func(d *models.AppData) error {
		e, err := findEstimate(d, id)
		if err != nil {
			return err
		}
		e.Items = items
		out = clone(*e)
		return nil
	})
	return out, err
}

// ImportEstimateItems parses a CSV or XLSX file and appends its valid rows to
// the estimate. Invalid rows are reported in the result and skipped.
func (s *Store) ImportEstimateItems(id string, file io.Reader, fileName string) (*services.ItemImportResult, error) {
	if _, err := s.Estimate(id); err != nil {
		return nil, err
	}
	result, err := services.ParseEstimateItems(file, fileName)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return result, nil
	}

	items := s.withEstimateIDs(result.Items)
	err = s.mutate(func(d *models.AppData) error {
		e, err := findEstimate(d, id)
		if err != nil {
			return err
		}
		e.Items = append(e.Items, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// ── Quotes ───────────────────────────────────────────────────────────────

// QuotePatch changes the fields that are set.
type QuotePatch struct {
	Name         *string              `json:"name"`
	TaxRate      *float64             `json:"taxRate"`
	Discount     *float64             `json:"discount"`
	DiscountType *models.DiscountType `json:"discountType"`
	Notes        *string              `json:"notes"`
	Terms        *string              `json:"terms"`
	QuoteNumber  *string              `json:"quoteNumber"`
	ExpiryDays   *int                 `json:"expiryDays"`
	CompanyInfo  *models.CompanyInfo  `json:"companyInfo"`
}

func validateQuote(q *models.Quote) error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&q.TaxRate, validation.Min(0.0)),
		validation.Field(&q.Discount, validation.Min(0.0)),
		validation.Field(&q.ExpiryDays, validation.Min(0)),
		validation.Field(&q.Status, validation.By(func(v interface{}) error {
			if st, _ := v.(models.QuoteStatus); !st.Valid() {
				return validation.NewError("validation_status", "must be one of draft, sent, accepted, declined")
			}
			return nil
		})),
		validation.Field(&q.Items, validation.By(func(v interface{}) error {
			items, _ := v.([]models.QuoteItem)
			return validateQuoteItems(items)
		})),
	)
}

func validateQuoteItems(items []models.QuoteItem) error {
	errs := validation.Errors{}
	for i, it := range items {
		if err := validation.ValidateStruct(&it, validation.Field(&it.Quantity, validation.Min(0.0))); err != nil {
			errs[fmt.Sprint(i)] = err
		}
	}
	return errs.Filter()
}

func findQuote(d *models.AppData, id string) (*models.Quote, error) {
	for i := range d.Quotes {
		if d.Quotes[i].ID == id {
			return &d.Quotes[i], nil
		}
	}
	return nil, notFound("quote", id)
}

func (s *Store) Quotes() []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Quotes)
}

func (s *Store) Quote(id string) (models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, err := findQuote(&s.data, id)
	if err != nil {
		return models.Quote{}, err
	}
	return clone(*q), nil
}

// CreateQuoteFromEstimate copies the estimate's items into a new draft quote.
// Items keep their estimate ids so base costs resolve, and start priced at
// cost with no markup. An empty name becomes "Quote for <estimate>".
func (s *Store) CreateQuoteFromEstimate(estimateID, name string) (models.Quote, error) {
	var out models.Quote
	err := s.mutate(func(d *models.AppData) error {
		est, err := findEstimate(d, estimateID)
		if err != nil {
			return err
		}
		now := s.now()
		q := models.Quote{
			ID:           s.newID(),
			EstimateID:   est.ID,
			CreatedAt:    now.UnixMilli(),
			Name:         strings.TrimSpace(name),
			Status:       models.StatusDraft,
			Items:        make([]models.QuoteItem, 0, len(est.Items)),
			TaxRate:      d.Settings.DefaultTaxRate,
			DiscountType: models.DiscountAmount,
			CompanyInfo:  d.Settings.CompanyInfo,
			QuoteNumber:  services.NextQuoteNumber(d.Quotes, now),
			ExpiryDays:   d.Settings.DefaultExpiryDays,
		}
		if q.Name == "" {
			q.Name = "Quote for " + est.Name
		}
		for _, it := range est.Items {
			q.Items = append(q.Items, models.QuoteItem{
				ID:          it.ID,
				Description: it.Description,
				Category:    it.Category,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				UnitPrice:   it.CostPerUnit,
			})
		}
		d.Quotes = append(d.Quotes, q)
		out = clone(q)
		return nil
	})
	return out, err
}

func (s *Store) UpdateQuote(id string, p QuotePatch) (models.Quote, error) {
	var out models.Quote
	err := s.mutate(func(d *models.AppData) error {
		q, err := findQuote(d, id)
		if err != nil {
			return err
		}
		next := clone(*q)
		setIf(&next.Name, p.Name)
		setIf(&next.TaxRate, p.TaxRate)
		setIf(&next.Discount, p.Discount)
		setIf(&next.DiscountType, p.DiscountType)
		setIf(&next.Notes, p.Notes)
		setIf(&next.Terms, p.Terms)
		setIf(&next.QuoteNumber, p.QuoteNumber)
		setIf(&next.ExpiryDays, p.ExpiryDays)
		setIf(&next.CompanyInfo, p.CompanyInfo)
		next.Name = strings.TrimSpace(next.Name)
		if err := validateQuote(&next); err != nil {
			return err
		}
		*q = next
		out = clone(next)
		return nil
	})
	return out, err
}

// UpdateQuoteItems replaces the quote's items. Items without an id get a
// fresh one, which matches no estimate item, so their base cost is 0.
func (s *Store) UpdateQuoteItems(id string, items []models.QuoteItem) (models.Quote, error) {
	if err := validateQuoteItems(items); err != nil {
		return models.Quote{}, validation.Errors{"items": err}
	}
	fresh := make([]models.QuoteItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = s.newID()
		}
		fresh[i] = it
	}
	var out models.Quote
	err := s.mutate(func(d *models.AppData) error {
		q, err := findQuote(d, id)
		if err != nil {
			return err
		}
		q.Items = fresh
		out = clone(*q)
		return nil
	})
	return out, err
}

// SetQuoteStatus moves the quote to any status.
func (s *Store) SetQuoteStatus(id string, status models.QuoteStatus) (models.Quote, error) {
	if !status.Valid() {
		return models.Quote{}, validation.Errors{"status": validation.NewError("validation_status", "must be one of draft, sent, accepted, declined")}
	}
	var out models.Quote
	err := s.mutate(func(d *models.AppData) error {
		q, err := findQuote(d, id)
		if err != nil {
			return err
		}
		q.Status = status
		out = clone(*q)
		return nil
	})
	return out, err
}

// ── Settings ─────────────────────────────────────────────────────────────

// SettingsPatch changes the fields that are set. CompanyInfo replaces the
// whole company block.
type SettingsPatch struct {
	DefaultTaxRate    *float64            `json:"defaultTaxRate"`
	DefaultExpiryDays *int                `json:"defaultExpiryDays"`
	CompanyInfo       *models.CompanyInfo `json:"companyInfo"`
	PreparerName      *string             `json:"preparerName"`
	Currency          *string             `json:"currency"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

func validateSettings(st *models.AppSettings) error {
	return validation.ValidateStruct(st,
		validation.Field(&st.DefaultTaxRate, validation.Min(0.0)),
		validation.Field(&st.DefaultExpiryDays, validation.Min(0)),
		validation.Field(&st.Currency, validation.By(func(v interface{}) error {
			code, _ := v.(string)
			if code != "" && !services.IsSupportedCurrency(code) {
				return validation.NewError("validation_currency", "is not a supported currency")
			}
			return nil
		})),
		validation.Field(&st.CompanyInfo, validation.By(func(v interface{}) error {
			ci, _ := v.(models.CompanyInfo)
			return validation.ValidateStruct(&ci,
				validation.Field(&ci.BrandColor, validation.Match(hexColor)),
			)
		})),
	)
}

func (s *Store) Settings() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Settings)
}

// UpdateSettings merges the patch into the settings.
func (s *Store) UpdateSettings(p SettingsPatch) (models.AppSettings, error) {
	var out models.AppSettings
	err := s.mutate(func(d *models.AppData) error {
		next := d.Settings
		setIf(&next.DefaultTaxRate, p.DefaultTaxRate)
		setIf(&next.DefaultExpiryDays, p.DefaultExpiryDays)
		setIf(&next.CompanyInfo, p.CompanyInfo)
		setIf(&next.PreparerName, p.PreparerName)
		setIf(&next.Currency, p.Currency)
		next.Currency = strings.ToUpper(strings.TrimSpace(next.Currency))
		if err := validateSettings(&next); err != nil {
			return err
		}
		d.Settings = next
		out = clone(next)
		return nil
	})
	return out, err
}
