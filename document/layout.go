package document

import (
	"errors"
	"fmt"
	"strings"

	"quotedesk/models"
	"quotedesk/services"
)

// ErrMissingInput is returned when the quote, its estimate or its client is absent.
var ErrMissingInput = errors.New("document: missing input")

// defaultBrand is used when the company has no valid brand color.
var defaultBrand = Color{26, 54, 93}

// Input is everything a layout needs. Only Logo is optional.
type Input struct {
	Quote        *models.Quote
	Estimate     *models.Estimate
	Client       *models.Client
	Company      models.CompanyInfo
	PreparerName string
	Currency     string
	Logo         LogoResult
}

// Block draws one section of the document and advances the cursor.
type Block interface {
	draw(c *composer)
}

type blockFunc func(c *composer)

func (f blockFunc) draw(c *composer) { f(c) }

// Layout runs the template's blocks over the input and returns the pages.
// It fails only when a required input is missing.
func Layout(spec *Spec, in Input, m Measurer) (*Document, error) {
	switch {
	case spec == nil:
		return nil, fmt.Errorf("%w: template", ErrMissingInput)
	case in.Quote == nil:
		return nil, fmt.Errorf("%w: quote", ErrMissingInput)
	case in.Estimate == nil:
		return nil, fmt.Errorf("%w: estimate", ErrMissingInput)
	case in.Client == nil:
		return nil, fmt.Errorf("%w: client", ErrMissingInput)
	case m == nil:
		return nil, fmt.Errorf("%w: measurer", ErrMissingInput)
	}

	c := &composer{
		spec: spec,
		m:    m,
		v:    newView(in),
		doc:  &Document{PageWidth: A4Width, PageHeight: A4Height, Pages: []Page{{}}},
	}
	for _, b := range spec.LayoutBlocks() {
		b.draw(c)
	}
	return c.doc, nil
}

// view is the formatted data shared by all blocks.
type view struct {
	in         Input
	metrics    services.QuoteMetrics
	brand      Color
	title      string
	created    string
	validUntil string
	terms      []string
	rows       []itemRow
}

type itemRow struct {
	description string
	qty         string
	unit        string
	unitPrice   string
	lineTotal   string
}

func newView(in Input) *view {
	in = validInput(in)
	q := in.Quote
	v := &view{
		in:         in,
		metrics:    services.ComputeQuoteMetrics(q, in.Estimate),
		created:    services.FormatDate(q.Created()),
		validUntil: services.FormatDate(q.ValidUntil()),
		terms:      SplitTerms(q.Terms),
	}

	v.brand = defaultBrand
	if c, ok := ParseHex(in.Company.BrandColor); ok {
		v.brand = c
	}

	v.title = q.QuoteNumber
	if v.title == "" {
		v.title = q.Name
	}

	for _, it := range q.Items {
		price := services.EffectiveUnitPrice(it, in.Estimate)
		desc := it.Description
		if desc == "" {
			desc = "—"
		}
		v.rows = append(v.rows, itemRow{
			description: desc,
			qty:         services.FormatQuantity(it.Quantity),
			unit:        it.Unit,
			unitPrice:   v.money(price),
			lineTotal:   v.money(services.LineTotal(it, in.Estimate)),
		})
	}
	if len(v.rows) == 0 {
		v.rows = []itemRow{{description: "—", qty: "0", unitPrice: v.money(0), lineTotal: v.money(0)}}
	}
	return v
}

// validText replaces invalid UTF-8 sequences, which imported files may carry.
func validText(s string) string {
	return strings.ToValidUTF8(s, "?")
}

// validInput returns a copy of in with every drawn string made valid UTF-8.
func validInput(in Input) Input {
	q := *in.Quote
	q.Name = validText(q.Name)
	q.QuoteNumber = validText(q.QuoteNumber)
	q.Notes = validText(q.Notes)
	q.Terms = validText(q.Terms)
	q.Items = make([]models.QuoteItem, len(in.Quote.Items))
	for i, it := range in.Quote.Items {
		it.Description = validText(it.Description)
		it.Category = validText(it.Category)
		it.Unit = validText(it.Unit)
		q.Items[i] = it
	}
	in.Quote = &q

	cl := *in.Client
	cl.Name = validText(cl.Name)
	cl.Contact = validText(cl.Contact)
	cl.Email = validText(cl.Email)
	cl.Address = validText(cl.Address)
	cl.Company = validText(cl.Company)
	in.Client = &cl

	in.Company.Name = validText(in.Company.Name)
	in.Company.Address = validText(in.Company.Address)
	in.Company.Contact = validText(in.Company.Contact)
	in.PreparerName = validText(in.PreparerName)
	return in
}

func (v *view) money(amount float64) string {
	return services.FormatCurrencyPDF(amount, v.in.Currency)
}

// contactLine joins the company name, address and contact with bullets.
func (v *view) contactLine() string {
	return joinNonEmpty(" • ", v.in.Company.Name, v.in.Company.Address, v.in.Company.Contact)
}

// SplitTerms splits terms on newlines or runs of semicolons, trimming entries
// and dropping empty ones.
func SplitTerms(terms string) []string {
	fields := strings.FieldsFunc(terms, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func nonEmpty(parts ...string) []string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}

// composer appends instructions to the current page and tracks the cursor.
type composer struct {
	spec *Spec
	m    Measurer
	v    *view
	doc  *Document
	y    float64
}

func (c *composer) add(op Op) {
	p := &c.doc.Pages[len(c.doc.Pages)-1]
	p.Ops = append(p.Ops, op)
}

func (c *composer) newPage() {
	c.doc.Pages = append(c.doc.Pages, Page{})
	c.y = c.spec.Margin
}

func (c *composer) pageWidth() float64  { return c.doc.PageWidth }
func (c *composer) pageHeight() float64 { return c.doc.PageHeight }
func (c *composer) rightX() float64     { return c.doc.PageWidth - c.spec.Margin }

// safeBottom is the lowest baseline closing content may use.
func (c *composer) safeBottom() float64 {
	return c.doc.PageHeight - c.spec.Margin - 40
}

func (c *composer) font(style FontStyle, size float64) Font {
	return Font{Family: c.spec.Typography.Family, Style: style, Size: size}
}

func (c *composer) text(x, y float64, s string, f Font, col Color, a Align) {
	if s == "" {
		return
	}
	c.add(Text{X: x, Y: y, Text: s, Font: f, Color: col, Align: a})
}

// lines draws consecutive lines starting at baseline y, spaced by step.
func (c *composer) lines(x, y float64, ls []string, f Font, col Color, a Align, step float64) {
	for i, l := range ls {
		c.text(x, y+float64(i)*step, l, f, col, a)
	}
}

func (c *composer) line(x1, y1, x2, y2 float64, col Color, width float64) {
	c.add(Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: col, Width: width})
}

func (c *composer) fillRect(x, y, w, h float64, fill Color) {
	c.add(Rect{X: x, Y: y, W: w, H: h, Fill: &fill})
}

func (c *composer) strokeRect(x, y, w, h float64, stroke Color, width float64) {
	c.add(Rect{X: x, Y: y, W: w, H: h, Stroke: &stroke, StrokeWidth: width})
}

// logo places the logo when one decoded; otherwise it reports false.
func (c *composer) logo(x, y, w, h float64) bool {
	if !c.v.in.Logo.OK() {
		return false
	}
	c.add(Image{X: x, Y: y, W: w, H: h, Image: c.v.in.Logo.Image})
	return true
}

func (c *composer) wrap(s string, f Font, width float64) []string {
	return Wrap(c.m, s, f, width)
}

func (c *composer) paint(p Paint) Color {
	return p.resolve(c.v.brand)
}
