package document

// Paint is a color that may depend on the company brand color. With Brand set
// the brand color is used, lightened toward white by Lighten.
type Paint struct {
	Color   Color
	Brand   bool
	Lighten float64
}

// Solid paints a fixed color.
func Solid(c Color) Paint { return Paint{Color: c} }

// BrandPaint paints the brand color lightened by t.
func BrandPaint(t float64) Paint { return Paint{Brand: true, Lighten: t} }

func (p Paint) resolve(brand Color) Color {
	if !p.Brand {
		return p.Color
	}
	if p.Lighten > 0 {
		return Lighten(brand, p.Lighten)
	}
	return brand
}

// Palette holds the fixed colors of a template.
type Palette struct {
	Heading Color // section titles
	Body    Color // running text
	Muted   Color // footer and side notes
	Rule    Color // dividers
}

// Typography selects the font family and base sizes of a template.
type Typography struct {
	Family   FontFamily
	BodySize float64
}

// TableStyle parameterizes the items table.
type TableStyle struct {
	FontSize    float64
	Padding     float64
	IndexColumn bool // leading "Item" column with the 1-based row number
	QtyWidth    float64
	QtyAlign    Align
	UnitAlign   Align
	HeadFill    Paint
	HeadText    Color
	BodyText    Color
	Stripe      *Paint // alternate row fill, nil for none
	Border      *Paint // cell borders, nil for none
	BorderWidth float64
}

// TotalsStyle parameterizes the totals block. Offsets are below the table end.
type TotalsStyle struct {
	Size        float64
	Color       Paint
	GrandLabel  string
	GrandSize   float64
	GrandColor  Paint
	GrandOffset float64
}

// TermsStyle parameterizes the terms list.
type TermsStyle struct {
	Title      string
	TitleSize  float64
	TitleColor Paint
	Size       float64
	Numbered   bool    // "1. " labels instead of bullets
	Indent     float64 // text offset from the bullet or number
	Inset      float64 // width reserved from the column for the bullet
}

// FooterStyle parameterizes the last-page footer. Offsets are measured up from
// the bottom margin.
type FooterStyle struct {
	RuleOffset    float64
	Rule          Paint
	Heading       string
	HeadingOffset float64
	HeadingColor  Paint
	InfoStyle     FontStyle
	InfoSize      float64
	InfoOffset    float64
	InfoColor     Color
	Closing       string
	ClosingOffset float64
	ClosingColor  Paint
}
