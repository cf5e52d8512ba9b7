package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"quotedesk/models"
)

// maxMinorUnits is the largest amount, in minor units, go-money can hold.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// pesoSign is the one currency symbol the PDF core fonts cannot draw.
const pesoSign = "₱"

// FormatCurrency formats an amount with the symbol and grouping of the given
// ISO 4217 currency code, e.g. "$1,234.50". The Philippine peso sign is
// replaced by the "PHP " code text, e.g. "PHP 1,234.50". Unknown codes fall back to "XYZ 1,234.50".
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	cur := money.GetCurrency(code)
	if cur == nil {
		return formatUnknownCurrency(amount, code)
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	var out string
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		out = money.New(minor.IntPart(), code).Display()
	} else {
		out = formatMinorDigits(minor, cur)
	}

	if code == "PHP" {
		out = withCodeText(out, pesoSign, code)
	}
	return out
}

// FormatCurrencyPDF is FormatCurrency restricted to what the PDF core fonts can
// draw: a symbol outside Windows-1252 (₹, 元, ...) is replaced by the code text.
func FormatCurrencyPDF(amount float64, code string) string {
	out := FormatCurrency(amount, code)
	if _, err := charmap.Windows1252.NewEncoder().String(out); err == nil {
		return out
	}
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil || cur.Grapheme == "" {
		return out
	}
	return withCodeText(out, cur.Grapheme, cur.Code)
}

// withCodeText rewrites a formatted amount so the symbol becomes a "XYZ " prefix,
// keeping the sign in front: "-₱1.00" → "-PHP 1.00".
func withCodeText(formatted, symbol, code string) string {
	neg := strings.HasPrefix(formatted, "-")
	num := strings.TrimPrefix(formatted, "-")
	num = strings.TrimSpace(strings.Replace(num, symbol, "", 1))
	out := code + " " + num
	if neg {
		out = "-" + out
	}
	return out
}

// formatMinorDigits lays out an amount too large for an int64 with the
// currency's separators and template, the same way go-money does.
func formatMinorDigits(minor decimal.Decimal, cur *money.Currency) string {
	sa := minor.Abs().String()
	if len(sa) <= cur.Fraction {
		sa = strings.Repeat("0", cur.Fraction-len(sa)+1) + sa
	}
	if cur.Thousand != "" {
		for i := len(sa) - cur.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + cur.Thousand + sa[i:]
		}
	}
	if cur.Fraction > 0 {
		sa = sa[:len(sa)-cur.Fraction] + cur.Decimal + sa[len(sa)-cur.Fraction:]
	}
	sa = strings.Replace(cur.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

func formatUnknownCurrency(amount float64, code string) string {
	rounded := decimal.NewFromFloat(math.Abs(amount)).Round(2).InexactFloat64()
	out := code + " " + humanize.FormatFloat("#,###.##", rounded)
	if amount < 0 && rounded != 0 {
		out = "-" + out
	}
	return out
}

// FormatQuantity renders a quantity without trailing zeros: 2 → "2", 2.5 → "2.5".
func FormatQuantity(qty float64) string {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return "0"
	}
	return humanize.Ftoa(qty)
}

// FormatPercent renders a rate the way it was typed: 10 → "10%", 7.5 → "7.5%".
func FormatPercent(rate float64) string {
	return FormatQuantity(rate) + "%"
}

// FormatDate renders a date in month/day/year form.
func FormatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// DiscountLabel names the discount line, showing the rate for percentage discounts.
func DiscountLabel(q *models.Quote) string {
	if q.DiscountType.Normalize() == models.DiscountPercentage {
		return fmt.Sprintf("Discount (%s)", FormatPercent(q.Discount))
	}
	return "Discount"
}

// TaxLabel names the tax line with its rate.
func TaxLabel(rate float64) string {
	return fmt.Sprintf("Tax (%s)", FormatPercent(finite(rate)))
}
