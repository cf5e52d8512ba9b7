package document

// modernStripe fills the header band and alternate table rows of the modern template.
var modernStripe = Color{247, 250, 252}

// modernHeader draws a light band with a centered logo and title, the quote
// metadata and the To/From columns.
func modernHeader(c *composer) {
	m := c.spec.Margin
	pw := c.pageWidth()
	cx := pw / 2
	right := c.rightX()
	pal := c.spec.Palette
	v := c.v

	c.fillRect(0, m-8, pw, 44, modernStripe)
	c.logo(cx-24, m, 48, 48)

	title := v.title
	if title == "" {
		title = "Quotation"
	}
	c.text(cx, m+72, title, c.font(StyleBold, 22), pal.Heading, AlignCenter)
	c.line(cx-40, m+78, cx+40, m+78, v.brand, 1)

	f := c.font(StyleRegular, 10)
	c.text(m, m+94, "Quote Number: "+v.in.Quote.QuoteNumber, f, pal.Body, AlignLeft)
	c.text(right, m+94, "Date: "+v.created, f, pal.Body, AlignRight)
	c.text(m, m+110, "Valid Until: "+v.validUntil, f, pal.Body, AlignLeft)
	c.line(m, m+122, right, m+122, pal.Rule, 0.5)

	label := c.font(StyleBold, 10)
	c.text(m, m+140, "To:", label, pal.Heading, AlignLeft)
	c.text(right, m+140, "From:", label, pal.Heading, AlignRight)
	cl := v.in.Client
	c.lines(m, m+154, nonEmpty(cl.Name, cl.Address, cl.Email), f, pal.Body, AlignLeft, 14)
	co := v.in.Company
	c.lines(right, m+154, nonEmpty(co.Name, co.Address, co.Contact), f, pal.Body, AlignRight, 14)

	c.line(m, m+198, right, m+198, pal.Rule, 0.5)
	c.y = m + 210
}

// classicAccent is the accent rule under the classic letterhead.
var classicAccent = Color{52, 152, 219}

// classicHeader draws a letterhead with company details, customer and sender
// columns and a quotation details section. Extra wrapped letterhead lines push
// the rest of the header down.
func classicHeader(c *composer) {
	m := c.spec.Margin
	pw := c.pageWidth()
	right := c.rightX()
	pal := c.spec.Palette
	v := c.v
	co := v.in.Company

	addrX := m
	if c.logo(m, m, 40, 40) {
		addrX = m + 48
	}
	c.text(right, m+14, co.Name, c.font(StyleBold, 18), pal.Heading, AlignRight)

	body := c.font(StyleRegular, 11)
	half := pw/2 - m - 8
	addr := c.wrap(co.Address, body, half-(addrX-m))
	contact := c.wrap(co.Contact, body, half)
	c.lines(addrX, m+32, addr, body, pal.Body, AlignLeft, 12)
	c.lines(right, m+32, contact, body, pal.Body, AlignRight, 12)

	// y is the top of the letterhead plus the overflow of wrapped lines.
	y := m + 12*float64(max(len(addr), len(contact), 1)-1)
	if v.in.PreparerName != "" {
		c.text(addrX, y+48, "Prepared by: "+v.in.PreparerName, body, pal.Body, AlignLeft)
	}
	c.line(m, y+62, right, y+62, classicAccent, 1)

	heading := c.font(StyleBold, 12)
	c.text(m, y+84, "CUSTOMER", heading, pal.Heading, AlignLeft)
	c.text(right, y+84, "FROM", heading, pal.Heading, AlignRight)
	f := c.font(StyleRegular, 10)
	cl := v.in.Client
	email := ""
	if cl.Email != "" {
		email = "Email: " + cl.Email
	}
	c.lines(m, y+100, nonEmpty(cl.Name, cl.Address, email), f, pal.Body, AlignLeft, 12)
	c.lines(right, y+100, nonEmpty(co.Name, co.Address, co.Contact), f, pal.Body, AlignRight, 12)

	c.line(m, y+136, right, y+136, pal.Rule, 0.5)
	c.text(m, y+156, "QUOTATION DETAILS", heading, pal.Heading, AlignLeft)
	name := v.in.Quote.QuoteNumber
	if name == "" {
		name = v.in.Quote.Name
	}
	c.text(m, y+172, "Quotation: "+name, f, pal.Body, AlignLeft)
	c.text(right, y+172, "Date: "+v.created, f, pal.Body, AlignRight)
	c.text(m, y+186, "Quote Number: "+v.in.Quote.QuoteNumber, f, pal.Body, AlignLeft)
	c.text(right, y+186, "Valid Until: "+v.validUntil, f, pal.Body, AlignRight)
	c.text(m, y+200, "Customer ID: "+cl.ID, f, pal.Body, AlignLeft)

	c.line(m, y+212, right, y+212, pal.Rule, 0.5)
	c.text(m, y+232, "DESCRIPTION OF SERVICES", heading, pal.Heading, AlignLeft)
	c.y = y + 244
}

const (
	boldBannerHeight = 90
	boldBoxMinHeight = 72
	boldBoxGap       = 16
	boldLineStep     = 12
)

// boldHeader draws a brand-colored banner and three bordered boxes whose
// heights follow their wrapped content.
func boldHeader(c *composer) {
	m := c.spec.Margin
	pw := c.pageWidth()
	right := c.rightX()
	pal := c.spec.Palette
	v := c.v
	co := v.in.Company

	c.fillRect(0, 0, pw, boldBannerHeight, v.brand)
	nameX := m
	if c.logo(m, 14, 36, 36) {
		nameX = m + 46
	}
	c.text(nameX, 30, co.Name, c.font(StyleBold, 20), White, AlignLeft)
	title := v.title
	if title == "" {
		title = "QUOTATION"
	}
	c.text(right, 30, title, c.font(StyleBold, 16), White, AlignRight)
	c.text(nameX, 50, joinNonEmpty(" • ", co.Address, co.Contact), c.font(StyleRegular, 10), White, AlignLeft)

	colW := (pw - 2*m - boldBoxGap) / 2
	innerW := colW - 16
	f := c.font(StyleRegular, 10)
	wrapAll := func(parts ...string) []string {
		var out []string
		for _, p := range parts {
			out = append(out, c.wrap(p, f, innerW)...)
		}
		return out
	}

	y0 := float64(boldBannerHeight + 20)
	cl := v.in.Client
	party := wrapAll(cl.Name, cl.Address, cl.Email)
	billH := c.infoBox(m, y0, colW, "BILL TO", party)
	shipY := y0 + billH + 12
	shipH := c.infoBox(m, shipY, colW, "SHIP TO", party)

	meta := []string{
		"Quote #: " + v.in.Quote.QuoteNumber,
		"Date: " + v.created,
		"Valid Until: " + v.validUntil,
	}
	if v.in.PreparerName != "" {
		meta = append(meta, "Prepared by: "+v.in.PreparerName)
	}
	metaH := c.infoBox(m+colW+boldBoxGap, y0, colW, "QUOTE INFO", wrapAll(meta...))

	start := max(shipY+shipH, y0+metaH) + 40
	c.text(m, start-10, "PROPOSED SERVICES", c.font(StyleBold, 12), pal.Heading, AlignLeft)
	c.y = start
}

// infoBox draws a bordered box with a bold title and content lines and
// returns its height.
func (c *composer) infoBox(x, y, w float64, title string, content []string) float64 {
	h := max(boldBoxMinHeight, 32+float64(len(content))*boldLineStep+12)
	pal := c.spec.Palette
	c.strokeRect(x, y, w, h, pal.Heading, 1)
	c.text(x+8, y+16, title, c.font(StyleBold, 11), pal.Heading, AlignLeft)
	c.lines(x+8, y+32, content, c.font(StyleRegular, 10), pal.Body, AlignLeft, boldLineStep)
	return h
}
