// Package pdfrender executes laid out documents against gofpdf and checks the
// resulting files with pdfcpu.
package pdfrender

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/phpdave11/gofpdf"

	"quotedesk/document"
)

// ErrEmptyDocument is returned for a nil document or one without pages.
var ErrEmptyDocument = errors.New("pdfrender: empty document")

func newPDF(w, h float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Render draws every page of doc and serializes the PDF. Image failures skip
// the image; any other backend failure or panic returns an error and no bytes.
func Render(doc *document.Document) (blob []byte, err error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, ErrEmptyDocument
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pdfrender: render panicked: %v", r)
			blob, err = nil, fmt.Errorf("pdfrender: render: %v", r)
		}
	}()

	pdf := newPDF(doc.PageWidth, doc.PageHeight)
	pdf.SetCreator("quotedesk", true)
	r := &renderer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}

	for i, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			r.exec(op)
		}
		if err := pdf.Error(); err != nil {
			log.Printf("pdfrender: page %d: %v", i+1, err)
			return nil, fmt.Errorf("pdfrender: page %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("pdfrender: output: %v", err)
		return nil, fmt.Errorf("pdfrender: output: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	// images records registered image names; false marks one that failed.
	images map[string]bool
}

func (r *renderer) exec(op document.Op) {
	pdf := r.pdf
	switch op := op.(type) {
	case document.Text:
		pdf.SetFont(string(op.Font.Family), string(op.Font.Style), op.Font.Size)
		s := r.tr(op.Text)
		x := op.X
		switch op.Align {
		case document.AlignRight:
			x -= pdf.GetStringWidth(s)
		case document.AlignCenter:
			x -= pdf.GetStringWidth(s) / 2
		}
		pdf.SetTextColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		pdf.Text(x, op.Y, s)

	case document.Line:
		pdf.SetDrawColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		pdf.SetLineWidth(op.Width)
		pdf.Line(op.X1, op.Y1, op.X2, op.Y2)

	case document.Rect:
		style := ""
		if op.Fill != nil {
			pdf.SetFillColor(int(op.Fill.R), int(op.Fill.G), int(op.Fill.B))
			style += "F"
		}
		if op.Stroke != nil {
			pdf.SetDrawColor(int(op.Stroke.R), int(op.Stroke.G), int(op.Stroke.B))
			pdf.SetLineWidth(op.StrokeWidth)
			style += "D"
		}
		if style != "" {
			pdf.Rect(op.X, op.Y, op.W, op.H, style)
		}

	case document.Image:
		r.image(op)
	}
}

// image registers the image on first use. A registration failure is logged,
// cleared and remembered so the document renders without it.
func (r *renderer) image(op document.Image) {
	if op.Image == nil || !r.pdf.Ok() {
		return
	}
	name := op.Image.Name
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	ok, seen := r.images[name]
	if !seen {
		r.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(op.Image.Data))
		ok = r.pdf.Ok()
		if !ok {
			log.Printf("pdfrender: skipping image %s: %v", name, r.pdf.Error())
			r.pdf.ClearError()
		}
		r.images[name] = ok
	}
	if ok {
		r.pdf.ImageOptions(name, op.X, op.Y, op.W, op.H, false, opt, 0, "")
	}
}

// Measurer measures strings with gofpdf's core font metrics, the same ones
// Render draws with. It is safe for concurrent use.
type Measurer struct {
	mu  sync.Mutex
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer returns a Measurer backed by a scratch gofpdf document.
func NewMeasurer() *Measurer {
	pdf := newPDF(document.A4Width, document.A4Height)
	return &Measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// StringWidth implements document.Measurer.
func (m *Measurer) StringWidth(s string, f document.Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(string(f.Family), string(f.Style), f.Size)
	return m.pdf.GetStringWidth(m.tr(s))
}
