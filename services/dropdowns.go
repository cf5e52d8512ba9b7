package services

import (
	"github.com/Rhymond/go-money"

	"quotedesk/models"
)

// UnitOptions lists the suggested units of measurement for estimate items.
var UnitOptions = []string{
	"unit",
	"pcs",
	"hour",
	"day",
	"week",
	"month",
	"lot",
	"set",
	"box",
	"m",
	"m²",
	"kg",
	"l",
}

// CurrencyCodes lists the currencies offered in settings, in display order.
var CurrencyCodes = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR", "PHP"}

// StatusOptions lists the selectable quote statuses.
var StatusOptions = models.Statuses

// CurrencyOption is one entry of the currency picker.
type CurrencyOption struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Sample string `json:"sample"`
}

// CurrencyOptions returns the supported currencies with their symbol and a
// formatted sample amount.
func CurrencyOptions() []CurrencyOption {
	opts := make([]CurrencyOption, 0, len(CurrencyCodes))
	for _, code := range CurrencyCodes {
		opt := CurrencyOption{Code: code, Sample: FormatCurrency(1234.5, code)}
		if c := money.GetCurrency(code); c != nil {
			opt.Symbol = c.Grapheme
		}
		opts = append(opts, opt)
	}
	return opts
}

// IsSupportedCurrency reports whether code is one of CurrencyCodes.
func IsSupportedCurrency(code string) bool {
	for _, c := range CurrencyCodes {
		if c == code {
			return true
		}
	}
	return false
}
