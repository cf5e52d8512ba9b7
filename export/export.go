// Package export turns a stored quote into its client-facing artifacts: the
// PDF in one of the templates, the print page, the spreadsheet and the
// internal margin report.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"

	"golang.org/x/sync/singleflight"

	"quotedesk/document"
	"quotedesk/models"
	"quotedesk/pdfrender"
)

var (
	ErrMissingQuote    = errors.New("export: quote not found")
	ErrMissingEstimate = errors.New("export: estimate not found")
	ErrMissingClient   = errors.New("export: client not found")
)

// DefaultTemplate is used when a request names no template.
const DefaultTemplate = "modern"

// maxCached bounds the number of finished renders kept in memory.
const maxCached = 32

// Source is the state an export reads from and the status change it may make.
// Snapshot must return a copy the caller owns.
type Source interface {
	Snapshot() models.AppData
	SetQuoteStatus(id string, status models.QuoteStatus) (models.Quote, error)
}

// Request selects the quote and the template to render.
type Request struct {
	QuoteID    string
	TemplateID string
}

// Result is a rendered PDF. Results may be shared between callers and must
// not be modified.
type Result struct {
	Blob        []byte
	Filename    string
	ContentType string
	Pages       int
}

// Exporter renders quotes. Identical requests over unchanged data share one
// render: concurrent callers wait for the render in flight and later callers
// get the cached result.
type Exporter struct {
	src     Source
	measure document.Measurer

	flight singleflight.Group
	mu     sync.Mutex
	cache  map[string]*Result
}

// New returns an Exporter measuring text with m, or with the PDF core fonts
// when m is nil.
func New(src Source, m document.Measurer) *Exporter {
	if m == nil {
		m = pdfrender.NewMeasurer()
	}
	return &Exporter{src: src, measure: m, cache: make(map[string]*Result)}
}

// bundle is the immutable input of one render, resolved from a snapshot.
type bundle struct {
	Quote        models.Quote       `json:"quote"`
	Estimate     models.Estimate    `json:"estimate"`
	Client       models.Client      `json:"client"`
	Company      models.CompanyInfo `json:"company"`
	PreparerName string             `json:"preparerName"`
	Currency     string             `json:"currency"`
}

// resolve finds the quote, its estimate and the estimate's client in one
// snapshot. The settings' company is used once it has a name; until then the
// quote keeps the company it was created with.
func resolve(data models.AppData, quoteID string) (*bundle, error) {
	var b bundle

	q := findQuote(data.Quotes, quoteID)
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingQuote, quoteID)
	}
	b.Quote = *q

	est := findEstimate(data.Estimates, q.EstimateID)
	if est == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingEstimate, q.EstimateID)
	}
	b.Estimate = *est

	var client *models.Client
	for i := range data.Clients {
		if data.Clients[i].ID == est.ClientID {
			client = &data.Clients[i]
			break
		}
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingClient, est.ClientID)
	}
	b.Client = *client

	b.Company = q.CompanyInfo
	if data.Settings.CompanyInfo.Name != "" {
		b.Company = data.Settings.CompanyInfo
	}
	b.PreparerName = data.Settings.PreparerName
	b.Currency = data.Settings.CurrencyOrDefault()
	return &b, nil
}

func findQuote(quotes []models.Quote, id string) *models.Quote {
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i]
		}
	}
	return nil
}

func findEstimate(estimates []models.Estimate, id string) *models.Estimate {
	for i := range estimates {
		if estimates[i].ID == id {
			return &estimates[i]
		}
	}
	return nil
}

// fingerprint identifies the rendered content of b in template id.
func (b *bundle) fingerprint(templateID string) (string, error) {
	blob, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(blob)
	return templateID + ":" + hex.EncodeToString(sum[:]), nil
}

// Export renders the quote as a PDF. It refuses before rendering when the
// quote, its estimate or its client is missing. A canceled context stops
// the call from waiting, but a render once started runs to completion.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if req.TemplateID == "" {
		req.TemplateID = DefaultTemplate
	}
	spec, err := document.LookupTemplate(req.TemplateID)
	if err != nil {
		return nil, err
	}
	b, err := resolve(e.src.Snapshot(), req.QuoteID)
	if err != nil {
		return nil, err
	}
	key, err := b.fingerprint(spec.ID)
	if err != nil {
		return nil, fmt.Errorf("export: fingerprint: %w", err)
	}

	e.mu.Lock()
	cached, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	ch := e.flight.DoChan(key, func() (interface{}, error) {
		res, err := e.render(spec, b)
		if err != nil {
			return nil, err
		}
		e.store(key, res)
		return res, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Exporter) store(key string, res *Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.cache) >= maxCached {
		clear(e.cache)
	}
	e.cache[key] = res
}

// ErrRender wraps a failure that escaped the layout or render stages.
var ErrRender = errors.New("export: render failed")

// render runs layout, drawing and verification. A panic in any stage is
// logged and returned as ErrRender so it never leaves the render goroutine.
func (e *Exporter) render(spec *document.Spec, b *bundle) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("export: quote %s template %s: recovered panic: %v", b.Quote.ID, spec.ID, r)
			res, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	logo := document.DecodeLogo(b.Company.LogoBase64)
	if logo.Err != nil && !errors.Is(logo.Err, document.ErrNoLogo) {
		log.Printf("export: quote %s: logo skipped: %v", b.Quote.ID, logo.Err)
	}

	doc, err := document.Layout(spec, document.Input{
		Quote:        &b.Quote,
		Estimate:     &b.Estimate,
		Client:       &b.Client,
		Company:      b.Company,
		PreparerName: b.PreparerName,
		Currency:     b.Currency,
		Logo:         logo,
	}, e.measure)
	if err != nil {
		return nil, err
	}

	blob, err := pdfrender.Render(doc)
	if err != nil {
		log.Printf("export: quote %s template %s: %v", b.Quote.ID, spec.ID, err)
		return nil, err
	}
	pages, err := pdfrender.Verify(blob)
	if err != nil {
		log.Printf("export: quote %s template %s: invalid output: %v", b.Quote.ID, spec.ID, err)
		return nil, err
	}

	log.Printf("export: rendered quote %s with %s (%d pages, %d bytes)", b.Quote.ID, spec.ID, pages, len(blob))
	return &Result{
		Blob:        blob,
		Filename:    Filename(&b.Quote, "pdf"),
		ContentType: "application/pdf",
		Pages:       pages,
	}, nil
}

// MarkSent records that the exported quote went to the client.
func (e *Exporter) MarkSent(quoteID string) (models.Quote, error) {
	return e.src.SetQuoteStatus(quoteID, models.StatusSent)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is the download name of a quote artifact: the quote number, or the
// quote name when unnumbered, reduced to a safe character set.
func Filename(q *models.Quote, ext string) string {
	base := q.QuoteNumber
	if base == "" {
		base = q.Name
	}
	base = unsafeFilename.ReplaceAllString(base, "-")
	if base == "" || base == "-" {
		base = "quote"
	}
	return base + "." + ext
}
