// Package templates holds the server-rendered HTML components. The *_templ.go
// files are generated from the .templ sources with `templ generate`.
package templates

import "regexp"

// PrintItem is one already-formatted table row of the print page.
type PrintItem struct {
	Description string
	Qty         string
	Unit        string
	UnitPrice   string
	LineTotal   string
}

// QuotePrintData is the view model of the printable quote page. Every amount
// is pre-formatted in the quote's currency.
type QuotePrintData struct {
	Title          string
	CompanyName    string
	CompanyAddress string
	CompanyContact string
	BrandColor     string
	QuoteNumber    string
	Date           string
	ValidUntil     string
	ClientName     string
	Items          []PrintItem
	Subtotal       string
	DiscountLabel  string
	Discount       string
	TaxLabel       string
	Tax            string
	GrandTotal     string
	Notes          string
	Terms          []string
	AutoPrint      bool
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const printCSS = `@media print { @page { size: A4; margin: 16mm; } .no-print { display: none; } }
body { font-family: system-ui, "Segoe UI", Roboto, Arial, sans-serif; padding: 24px; color: #1f2937; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #e5e7eb; padding: 6px; font-size: 12px; }
th { background: #f9fafb; text-align: left; }
.num { text-align: right; }
.totals { width: 280px; margin-left: auto; margin-top: 12px; }
.totals td { border: none; }
.title { text-align: center; margin: 16px 0; }
.subtle { color: #6b7280; font-size: 12px; white-space: pre-line; }
.grand td { font-weight: 700; }`

// printStyles returns the page stylesheet. Only a #rrggbb brand color reaches
// the raw CSS; anything else falls back to the default blue.
func printStyles(brand string) string {
	if !hexColor.MatchString(brand) {
		brand = "#2563eb"
	}
	return "<style>" + printCSS + "\n.title { color: " + brand + "; }</style>"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
