package document

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is returned by LookupTemplate for ids other than modern, classic and bold.
var ErrUnknownTemplate = errors.New("document: unknown template")

// Spec is a template variant. Variants share one block pipeline and differ
// only in these parameters.
type Spec struct {
	ID          string
	Name        string
	Description string
	Margin      float64
	Palette     Palette
	Typography  Typography
	Table       TableStyle
	Totals      TotalsStyle
	Terms       TermsStyle
	Footer      FooterStyle

	HeaderBlock  Block
	ClosingBlock Block
}

// LayoutBlocks returns the blocks drawn for this template, in order.
func (s *Spec) LayoutBlocks() []Block {
	return []Block{s.HeaderBlock, itemsBlock, totalsBlock, s.ClosingBlock, footerBlock}
}

var (
	darkBlue = Color{44, 62, 80}
	navy     = Color{26, 54, 93}
	slate    = Color{45, 55, 72}
)

// Modern is a sans-serif layout with a light header band and a striped table.
var Modern = &Spec{
	ID:          "modern",
	Name:        "Modern Clean",
	Description: "Light grey header, minimal lines, brand accent on total.",
	Margin:      18,
	Palette: Palette{
		Heading: slate,
		Body:    Color{74, 85, 104},
		Muted:   Gray(120),
		Rule:    Color{226, 232, 240},
	},
	Typography: Typography{Family: Helvetica, BodySize: 10},
	Table: TableStyle{
		FontSize:    10,
		Padding:     8,
		QtyWidth:    60,
		QtyAlign:    AlignCenter,
		UnitAlign:   AlignCenter,
		HeadFill:    Solid(slate),
		HeadText:    White,
		BodyText:    Color{74, 85, 104},
		Stripe:      &Paint{Color: modernStripe},
		Border:      &Paint{Color: Color{226, 232, 240}},
		BorderWidth: 0.5,
	},
	Totals: TotalsStyle{
		Size:        10,
		Color:       Solid(slate),
		GrandLabel:  "TOTAL",
		GrandSize:   11,
		GrandColor:  Solid(slate),
		GrandOffset: 68,
	},
	Terms: TermsStyle{
		Title:      "Terms & Conditions",
		TitleSize:  11,
		TitleColor: Solid(slate),
		Size:       10,
		Indent:     12,
		Inset:      14,
	},
	Footer: FooterStyle{
		RuleOffset: 30,
		Rule:       Solid(Color{226, 232, 240}),
		InfoStyle:  StyleRegular,
		InfoSize:   9,
		InfoOffset: 12,
		InfoColor:  Gray(120),
	},
	HeaderBlock:  blockFunc(modernHeader),
	ClosingBlock: stackedClosing(44, signatureLines),
}

// Classic is a serif letterhead layout with a ruled grid table and numbered terms.
var Classic = &Spec{
	ID:          "classic",
	Name:        "Classic Professional",
	Description: "Structured table with borders, serif font, bold header.",
	Margin:      36,
	Palette: Palette{
		Heading: darkBlue,
		Body:    Gray(51),
		Muted:   Gray(120),
		Rule:    Color{189, 195, 199},
	},
	Typography: Typography{Family: Times, BodySize: 11},
	Table: TableStyle{
		FontSize:    11,
		Padding:     6,
		QtyWidth:    48,
		QtyAlign:    AlignRight,
		UnitAlign:   AlignLeft,
		HeadFill:    Solid(Gray(230)),
		HeadText:    Black,
		BodyText:    Black,
		Border:      &Paint{Color: Black},
		BorderWidth: 0.8,
	},
	Totals: TotalsStyle{
		Size:        11,
		Color:       Solid(Gray(51)),
		GrandLabel:  "GRAND TOTAL",
		GrandSize:   12,
		GrandColor:  Solid(darkBlue),
		GrandOffset: 70,
	},
	Terms: TermsStyle{
		Title:      "TERMS AND CONDITIONS",
		TitleSize:  12,
		TitleColor: Solid(darkBlue),
		Size:       10,
		Numbered:   true,
		Indent:     16,
		Inset:      18,
	},
	Footer: FooterStyle{
		RuleOffset:    40,
		Rule:          Solid(Color{189, 195, 199}),
		InfoStyle:     StyleItalic,
		InfoSize:      10,
		InfoOffset:    18,
		InfoColor:     Gray(120),
		Closing:       "Thank You For Your Business!",
		ClosingOffset: 2,
		ClosingColor:  Solid(darkBlue),
	},
	HeaderBlock:  blockFunc(classicHeader),
	ClosingBlock: stackedClosing(84, centeredSignature),
}

// Bold is a brand-colored banner layout with boxed party details, an item
// index column and an authorization box.
var Bold = &Spec{
	ID:          "bold",
	Name:        "Bold & Branded",
	Description: "Solid brand header, boxed client details, authorization block.",
	Margin:      54,
	Palette: Palette{
		Heading: navy,
		Body:    slate,
		Muted:   Gray(120),
		Rule:    Gray(160),
	},
	Typography: Typography{Family: Helvetica, BodySize: 10},
	Table: TableStyle{
		FontSize:    10,
		Padding:     6,
		IndexColumn: true,
		QtyWidth:    48,
		QtyAlign:    AlignCenter,
		UnitAlign:   AlignCenter,
		HeadFill:    BrandPaint(0),
		HeadText:    White,
		BodyText:    slate,
		Stripe:      &Paint{Brand: true, Lighten: 0.92},
	},
	Totals: TotalsStyle{
		Size:        10,
		Color:       Solid(slate),
		GrandLabel:  "TOTAL DUE",
		GrandSize:   14,
		GrandColor:  BrandPaint(0),
		GrandOffset: 76,
	},
	Terms: TermsStyle{
		Title:      "Terms",
		TitleSize:  11,
		TitleColor: Solid(navy),
		Size:       10,
		Indent:     12,
		Inset:      12,
	},
	Footer: FooterStyle{
		RuleOffset:    36,
		Rule:          Solid(navy),
		Heading:       "Contact Information",
		HeadingOffset: 22,
		HeadingColor:  Solid(navy),
		InfoStyle:     StyleRegular,
		InfoSize:      9,
		InfoOffset:    8,
		InfoColor:     Gray(120),
	},
	HeaderBlock:  blockFunc(boldHeader),
	ClosingBlock: blockFunc(authorizationClosing),
}

// Templates lists the variants in presentation order.
func Templates() []*Spec {
	return []*Spec{Modern, Classic, Bold}
}

// LookupTemplate returns the variant with the given id.
func LookupTemplate(id string) (*Spec, error) {
	for _, s := range Templates() {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}
