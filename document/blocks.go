package document

import (
	"fmt"
	"math"
	"strings"

	"quotedesk/services"
)

const (
	// totalsHeight is the vertical space the totals block occupies below the table.
	totalsHeight = 96
	// closingTopInset is the first baseline below the top margin after a closing page break.
	closingTopInset = 12
	termLineStep    = 12
	termEntryStep   = 14
)

// itemsBlock draws the items table with one row per quote item.
var itemsBlock = blockFunc(func(c *composer) {
	st := c.spec.Table
	var cols []column
	if st.IndexColumn {
		cols = append(cols, column{header: "Item", width: 40, align: AlignCenter})
	}
	cols = append(cols,
		column{header: "Description", align: AlignLeft},
		column{header: "Qty", width: st.QtyWidth, align: st.QtyAlign},
		column{header: "Unit", width: 64, align: st.UnitAlign},
		column{header: "Unit Price", width: 90, align: AlignRight},
		column{header: "Line Total", width: 110, align: AlignRight},
	)

	rows := make([][]string, 0, len(c.v.rows))
	for i, r := range c.v.rows {
		var cells []string
		if st.IndexColumn {
			cells = append(cells, fmt.Sprint(i+1))
		}
		rows = append(rows, append(cells, r.description, r.qty, r.unit, r.unitPrice, r.lineTotal))
	}
	c.drawTable(table{columns: cols, rows: rows, style: st})
})

// totalsBlock draws the right-aligned subtotal, discount, tax and grand total rows.
var totalsBlock = blockFunc(func(c *composer) {
	st := c.spec.Totals
	if c.y+st.GrandOffset > c.pageHeight()-c.spec.Margin {
		c.newPage()
	}
	base := c.y
	rightX := c.rightX()
	labelX := rightX - 200
	m := c.v.metrics
	q := c.v.in.Quote

	f := c.font(StyleRegular, st.Size)
	col := c.paint(st.Color)
	rows := []struct{ label, value string }{
		{"Subtotal:", c.v.money(m.TotalAmount)},
		{services.DiscountLabel(q) + ":", "- " + c.v.money(m.DiscountAmount)},
		{services.TaxLabel(q.TaxRate) + ":", c.v.money(m.TaxAmount)},
	}
	for i, r := range rows {
		y := base + 18 + float64(i)*16
		c.text(labelX, y, r.label, f, col, AlignLeft)
		c.text(rightX, y, r.value, f, col, AlignRight)
	}

	gf := c.font(StyleBold, st.GrandSize)
	gc := c.paint(st.GrandColor)
	c.text(labelX, base+st.GrandOffset, st.GrandLabel+":", gf, gc, AlignLeft)
	c.text(rightX, base+st.GrandOffset, c.v.money(m.GrandTotal), gf, gc, AlignRight)
	c.y = base + totalsHeight
})

// ensure starts a new page when h more points below the cursor would cross
// the safe bottom.
func (c *composer) ensure(h float64) {
	if c.y+h > c.safeBottom() {
		c.newPage()
		c.y += closingTopInset
	}
}

// termList draws the terms entries from the cursor, wrapped to width. Each
// entry moves to a new page whole when it does not fit.
func (c *composer) termList(x, width float64) {
	st := c.spec.Terms
	f := c.font(StyleRegular, st.Size)
	col := c.spec.Palette.Body
	for i, term := range c.v.terms {
		ls := c.wrap(term, f, width-st.Inset)
		h := termEntryStep + float64(len(ls)-1)*termLineStep
		c.ensure(h)
		label := "•"
		if st.Numbered {
			label = fmt.Sprintf("%d. ", i+1)
		}
		c.text(x, c.y, label, f, col, AlignLeft)
		c.lines(x+st.Indent, c.y, ls, f, col, AlignLeft, termLineStep)
		c.y += h
	}
}

// termsSection draws the terms title and entries across the given column.
func (c *composer) termsSection(x, width float64) {
	if len(c.v.terms) == 0 {
		return
	}
	st := c.spec.Terms
	c.ensure(16 + termEntryStep)
	c.text(x, c.y, st.Title, c.font(StyleBold, st.TitleSize), c.paint(st.TitleColor), AlignLeft)
	c.y += 16
	c.termList(x, width)
	c.y += 8
}

// notesSection draws the quote notes as a labelled paragraph, breaking pages
// between lines.
func (c *composer) notesSection(x, width float64) {
	notes := strings.TrimSpace(c.v.in.Quote.Notes)
	if notes == "" {
		return
	}
	st := c.spec.Terms
	f := c.font(StyleRegular, st.Size)
	c.ensure(16 + termLineStep)
	c.text(x, c.y, "Notes", c.font(StyleBold, st.TitleSize), c.paint(st.TitleColor), AlignLeft)
	c.y += 16
	for _, l := range c.wrap(notes, f, width) {
		c.ensure(termLineStep)
		c.text(x, c.y, l, f, c.spec.Palette.Body, AlignLeft)
		c.y += termLineStep
	}
	c.y += 8
}

// stackedClosing draws terms and notes across the full width, followed by the
// given signature area.
func stackedClosing(signatureHeight float64, signature blockFunc) Block {
	return blockFunc(func(c *composer) {
		m := c.spec.Margin
		width := c.pageWidth() - 2*m
		c.ensure(0)
		c.termsSection(m, width)
		c.notesSection(m, width)
		c.ensure(signatureHeight)
		signature(c)
	})
}

// signatureLines draws a signature line and a shorter date line side by side.
func signatureLines(c *composer) {
	m := c.spec.Margin
	y := c.y + 24
	rule := Gray(200)
	c.line(m, y, m+220, y, rule, 0.5)
	c.line(m+244, y, m+364, y, rule, 0.5)
	f := c.font(StyleRegular, 9)
	c.text(m, y+12, "Authorized Signature", f, c.spec.Palette.Body, AlignLeft)
	c.text(m+244, y+12, "Date", f, c.spec.Palette.Body, AlignLeft)
	c.y += 44
}

// centeredSignature draws centered signature and date lines one above the other.
func centeredSignature(c *composer) {
	cx := c.pageWidth() / 2
	f := c.font(StyleRegular, 10)
	for i, label := range []string{"Signature", "Date"} {
		y := c.y + 24 + float64(i)*36
		c.line(cx-110, y, cx+110, y, c.spec.Palette.Rule, 0.5)
		c.text(cx, y+12, label, f, c.spec.Palette.Body, AlignCenter)
	}
	c.y += 84
}

// authorizationClosing draws a bordered authorization box on the right with
// the terms beside it on the left and the notes under the box.
func authorizationClosing(c *composer) {
	const (
		boxW  = 260.0
		boxH  = 120.0
		sideW = 160.0
	)
	m := c.spec.Margin
	c.ensure(boxH)
	page := len(c.doc.Pages)
	boxX := c.rightX() - boxW
	boxY := c.y
	heading := c.spec.Palette.Heading

	c.strokeRect(boxX, boxY, boxW, boxH, heading, 1)
	c.text(boxX+8, boxY+18, "AUTHORIZATION", c.font(StyleBold, 12), heading, AlignLeft)
	f := c.font(StyleRegular, 10)
	for i, label := range []string{"Authorized Signature:", "Print Name:", "Title:", "Date:"} {
		y := boxY + 40 + float64(i)*22
		c.text(boxX+8, y, label, f, c.spec.Palette.Body, AlignLeft)
		c.line(boxX+140, y+2, boxX+boxW-8, y+2, c.spec.Palette.Rule, 0.5)
	}

	bottom := boxY + boxH
	notes := strings.TrimSpace(c.v.in.Quote.Notes)
	sideLines := c.wrap(notes, f, sideW)
	sideY := bottom + 14
	sideFits := len(sideLines) > 0 && sideY+float64(len(sideLines))*termLineStep <= c.safeBottom()
	if sideFits {
		sideX := c.pageWidth() - m - sideW
		c.lines(sideX, sideY, sideLines, f, c.spec.Palette.Muted, AlignLeft, termLineStep)
		bottom = sideY + float64(len(sideLines)-1)*termLineStep
	}

	c.y = boxY + closingTopInset
	c.termsSection(m, c.pageWidth()-2*m-boxW-24)
	if len(c.doc.Pages) == page {
		c.y = math.Max(c.y, bottom)
	}
	c.y += 12

	if !sideFits {
		c.notesSection(m, c.pageWidth()-2*m)
	}
}

// footerBlock draws the company contact footer at the bottom of the last page.
var footerBlock = blockFunc(func(c *composer) {
	st := c.spec.Footer
	bottom := c.pageHeight() - c.spec.Margin
	if c.y > bottom-st.RuleOffset {
		c.newPage()
	}
	cx := c.pageWidth() / 2
	c.line(c.spec.Margin, bottom-st.RuleOffset, c.rightX(), bottom-st.RuleOffset, c.paint(st.Rule), 0.5)
	if st.Heading != "" {
		c.text(cx, bottom-st.HeadingOffset, st.Heading, c.font(StyleBold, 10), c.paint(st.HeadingColor), AlignCenter)
	}
	c.text(cx, bottom-st.InfoOffset, c.v.contactLine(), c.font(st.InfoStyle, st.InfoSize), st.InfoColor, AlignCenter)
	if st.Closing != "" {
		c.text(cx, bottom-st.ClosingOffset, st.Closing, c.font(StyleBold, 11), c.paint(st.ClosingColor), AlignCenter)
	}
	c.y = bottom
})
