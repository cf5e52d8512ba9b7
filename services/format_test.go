package services

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestFormatCurrency_USD(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "$0.00"},
		{"small integer", 5, "$5.00"},
		{"with decimals", 42.5, "$42.50"},
		{"thousands", 1234.56, "$1,234.56"},
		{"millions", 1234567.891, "$1,234,567.89"},
		{"rounds half up", 118.805, "$118.81"},
		{"float noise", 118.80000000000001, "$118.80"},
		{"negative", -100, "-$100.00"},
		{"NaN is zero", math.NaN(), "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.input, "USD")
			if got != tt.expect {
				t.Errorf("FormatCurrency(%v, USD) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatCurrency_EmptyCodeIsUSD(t *testing.T) {
	if got := FormatCurrency(10, ""); got != "$10.00" {
		t.Errorf("FormatCurrency(10, \"\") = %q, want $10.00", got)
	}
}

func TestFormatCurrency_BeyondInt64MinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   string
		expect string
	}{
		{"largest that fits", 9e16, "USD", "$90,000,000,000,000,000.00"},
		{"past int64", 1e17, "USD", "$100,000,000,000,000,000.00"},
		{"negative past int64", -1e20, "USD", "-$100,000,000,000,000,000,000.00"},
		{"no minor unit", 1e20, "JPY", "\u00a5100,000,000,000,000,000,000"},
		{"peso code text", 1e17, "PHP", "PHP 100,000,000,000,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.amount, tt.code)
			if got != tt.expect {
				t.Errorf("FormatCurrency(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.expect)
			}
		})
	}
}

func TestFormatCurrency_PesoUsesCodeText(t *testing.T) {
	got := FormatCurrency(1500.5, "PHP")
	if strings.Contains(got, pesoSign) {
		t.Errorf("FormatCurrency(PHP) = %q, still contains the peso sign", got)
	}
	if got != "PHP 1,500.50" {
		t.Errorf("FormatCurrency(PHP) = %q, want PHP 1,500.50", got)
	}
	if got := FormatCurrency(-2, "PHP"); got != "-PHP 2.00" {
		t.Errorf("FormatCurrency(-2, PHP) = %q, want -PHP 2.00", got)
	}
}

func TestFormatCurrencyPDF(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"dollar kept", "USD", "$10.00"},
		{"rupee replaced", "INR", "INR 10.00"},
		{"peso replaced", "PHP", "PHP 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrencyPDF(10, tt.code); got != tt.want {
				t.Errorf("FormatCurrencyPDF(10, %s) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency_OtherSymbolsKept(t *testing.T) {
	tests := []struct {
		code   string
		symbol string
	}{
		{"EUR", "€"},
		{"GBP", "£"},
		{"INR", "₹"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := FormatCurrency(99, tt.code)
			if !strings.Contains(got, tt.symbol) {
				t.Errorf("FormatCurrency(99, %s) = %q, want symbol %q", tt.code, got, tt.symbol)
			}
		})
	}
}

func TestFormatCurrency_UnknownCode(t *testing.T) {
	if got := FormatCurrency(1234.5, "zzq"); got != "ZZQ 1,234.50" {
		t.Errorf("FormatCurrency(unknown) = %q", got)
	}
	if got := FormatCurrency(-3, "ZZQ"); got != "-ZZQ 3.00" {
		t.Errorf("FormatCurrency(negative unknown) = %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.5"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
		{"infinite", math.Inf(1), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQuantity(tt.input)
			if got != tt.want {
				t.Errorf("FormatQuantity(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(10); got != "10%" {
		t.Errorf("FormatPercent(10) = %q", got)
	}
	if got := FormatPercent(7.5); got != "7.5%" {
		t.Errorf("FormatPercent(7.5) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "3/4/2025" {
		t.Errorf("FormatDate() = %q, want 3/4/2025", got)
	}
}
