// Package document lays out a priced quote as absolutely positioned draw
// instructions on fixed-size pages. It knows nothing about PDF; a renderer
// executes the resulting Document.
package document

import (
	"math"
	"strconv"
	"strings"
)

// A4 page size in PostScript points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Gray returns the color with all three channels set to v.
func Gray(v uint8) Color { return Color{v, v, v} }

var (
	White = Gray(255)
	Black = Gray(0)
)

// ParseHex parses "#rrggbb" or "#rgb". The leading '#' is optional.
func ParseHex(hex string) (Color, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// Lighten mixes c toward white by t in [0, 1].
func Lighten(c Color, t float64) Color {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*t))
	}
	return Color{mix(c.R), mix(c.G), mix(c.B)}
}

// FontFamily names one of the core PDF font families.
type FontFamily string

const (
	Helvetica FontFamily = "helvetica"
	Times     FontFamily = "times"
)

// FontStyle is "" (regular), "B" (bold) or "I" (italic).
type FontStyle string

const (
	StyleRegular FontStyle = ""
	StyleBold    FontStyle = "B"
	StyleItalic  FontStyle = "I"
)

// Font selects family, style and size in points.
type Font struct {
	Family FontFamily
	Style  FontStyle
	Size   float64
}

// Align is the horizontal anchor of a text instruction.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one draw instruction: Text, Line, Rect or Image.
type Op interface {
	isOp()
}

// Text draws a single line of text. Y is the baseline; X is the left edge,
// center or right edge depending on Align.
type Text struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
	Align Align
}

// Line strokes a straight line.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

// Rect draws a rectangle filled, stroked or both. A nil Fill or Stroke skips that part.
type Rect struct {
	X, Y, W, H  float64
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
}

// Image places a raster image scaled to W x H.
type Image struct {
	X, Y, W, H float64
	Image      *EmbeddedImage
}

func (Text) isOp()  {}
func (Line) isOp()  {}
func (Rect) isOp()  {}
func (Image) isOp() {}

// Page is the ordered list of instructions of one page.
type Page struct {
	Ops []Op
}

// Document is the laid out result: page size and pages in order.
type Document struct {
	PageWidth  float64
	PageHeight float64
	Pages      []Page
}

// Texts returns every Text instruction in page order.
func (d *Document) Texts() []Text {
	var out []Text
	for _, p := range d.Pages {
		for _, op := range p.Ops {
			if t, ok := op.(Text); ok {
				out = append(out, t)
			}
		}
	}
	return out
}
