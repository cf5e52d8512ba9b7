package document

// lineHeightFactor is the baseline-to-baseline distance in multiples of the font size.
const lineHeightFactor = 1.15

// minAutoWidth keeps the auto-sized column usable on narrow pages.
const minAutoWidth = 40

type column struct {
	header string
	width  float64 // 0 sizes the column to the remaining width
	align  Align
}

type table struct {
	columns []column
	rows    [][]string
	style   TableStyle
}

// drawTable lays the table out from the cursor down. Rows that would cross the
// bottom margin move to a new page, which repeats the header row first. The
// cursor is left at the bottom edge of the last row.
func (c *composer) drawTable(t table) {
	st := t.style
	margin := c.spec.Margin
	widths := c.columnWidths(t.columns)
	bottom := c.pageHeight() - margin

	body := c.font(StyleRegular, st.FontSize)
	head := c.font(StyleBold, st.FontSize)
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.header
	}

	headFill := c.paint(st.HeadFill)
	headH := c.rowHeight(headers, widths, head, st)
	if len(t.rows) > 0 && c.y+headH+c.rowHeight(t.rows[0], widths, body, st) > bottom {
		c.newPage()
	}
	c.drawRow(t, widths, headers, head, &headFill, st.HeadText)
	pageTop := c.y

	for i, cells := range t.rows {
		h := c.rowHeight(cells, widths, body, st)
		if c.y+h > bottom && c.y > pageTop {
			c.newPage()
			c.drawRow(t, widths, headers, head, &headFill, st.HeadText)
			pageTop = c.y
		}
		var fill *Color
		if st.Stripe != nil && i%2 == 1 {
			stripe := c.paint(*st.Stripe)
			fill = &stripe
		}
		c.drawRow(t, widths, cells, body, fill, st.BodyText)
	}
}

func (c *composer) columnWidths(cols []column) []float64 {
	total := c.pageWidth() - 2*c.spec.Margin
	fixed := 0.0
	autos := 0
	for _, col := range cols {
		if col.width > 0 {
			fixed += col.width
		} else {
			autos++
		}
	}
	auto := 0.0
	if autos > 0 {
		auto = (total - fixed) / float64(autos)
		if auto < minAutoWidth {
			auto = minAutoWidth
		}
	}
	widths := make([]float64, len(cols))
	for i, col := range cols {
		widths[i] = col.width
		if col.width <= 0 {
			widths[i] = auto
		}
	}
	return widths
}

func (c *composer) cellLines(s string, f Font, width float64, st TableStyle) []string {
	ls := c.wrap(s, f, width-2*st.Padding)
	if len(ls) == 0 {
		return []string{""}
	}
	return ls
}

func (c *composer) rowHeight(cells []string, widths []float64, f Font, st TableStyle) float64 {
	maxLines := 1
	for i, s := range cells {
		if i >= len(widths) {
			break
		}
		if n := len(c.cellLines(s, f, widths[i], st)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*f.Size*lineHeightFactor + 2*st.Padding
}

// drawRow draws one row at the cursor and advances the cursor by its height.
func (c *composer) drawRow(t table, widths []float64, cells []string, f Font, fill *Color, textColor Color) {
	st := t.style
	h := c.rowHeight(cells, widths, f, st)
	x := c.spec.Margin
	var border *Color
	if st.Border != nil && st.BorderWidth > 0 {
		b := c.paint(*st.Border)
		border = &b
	}

	for i, w := range widths {
		if fill != nil || border != nil {
			c.add(Rect{X: x, Y: c.y, W: w, H: h, Fill: fill, Stroke: border, StrokeWidth: st.BorderWidth})
		}
		if i < len(cells) {
			align := t.columns[i].align
			tx := x + st.Padding
			switch align {
			case AlignRight:
				tx = x + w - st.Padding
			case AlignCenter:
				tx = x + w/2
			}
			baseline := c.y + st.Padding + f.Size*0.8
			c.lines(tx, baseline, c.cellLines(cells[i], f, w, st), f, textColor, align, f.Size*lineHeightFactor)
		}
		x += w
	}
	c.y += h
}
