// Package customs derives the landed cost of an order: the total after
// import VAT and customs duty, in both source and display currency.
package customs

import (
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// Fallback rates used when a settings field is missing or non-positive.
// These match the application's default settings record.
const (
	defaultThreshold    = 75
	defaultVATRate      = 0.17
	defaultCustomsRate  = 0.12
	defaultExchangeRate = 3.7
)

// Rates is a consistent snapshot of the tax parameters for one computation.
// VAT and Customs are fractional rates (0.17 means 17%).
type Rates struct {
	Threshold    float64
	VAT          float64
	Customs      float64
	ExchangeRate float64
}

// Breakdown is the landed-cost result.
type Breakdown struct {
	Subtotal     float64 `json:"subtotal"`
	VAT          float64 `json:"vat"`
	Customs      float64 `json:"customs"`
	Total        float64 `json:"total"`
	TotalDisplay float64 `json:"totalInDisplayCurrency"`
	TaxApplies   bool    `json:"taxApplies"`
}

// Compute derives the landed cost of price plus shipping. Below the
// threshold no tax applies and the total equals the subtotal.
func Compute(price, shipping float64, r Rates) Breakdown {
	subtotal := price + shipping

	if subtotal < r.Threshold {
		return Breakdown{
			Subtotal:     subtotal,
			Total:        subtotal,
			TotalDisplay: subtotal * r.ExchangeRate,
			TaxApplies:   false,
		}
	}

	vat := subtotal * r.VAT
	duty := subtotal * r.Customs
	total := subtotal + vat + duty

	return Breakdown{
		Subtotal:     subtotal,
		VAT:          vat,
		Customs:      duty,
		Total:        total,
		TotalDisplay: total * r.ExchangeRate,
		TaxApplies:   true,
	}
}

// RatesFromSettings builds a Rates snapshot from the settings record,
// converting stored percentages to fractions and substituting documented
// defaults for missing or non-positive fields so NaN can never propagate
// into a computed price.
func RatesFromSettings(s models.Settings) Rates {
	r := Rates{
		Threshold:    s.CustomsThreshold,
		VAT:          s.VATRate / 100,
		Customs:      s.CustomsRate / 100,
		ExchangeRate: s.ExchangeRate,
	}
	if !(r.Threshold >= 0) {
		r.Threshold = defaultThreshold
	}
	if !(r.VAT > 0) {
		r.VAT = defaultVATRate
	}
	if !(r.Customs > 0) {
		r.Customs = defaultCustomsRate
	}
	if !(r.ExchangeRate > 0) {
		r.ExchangeRate = defaultExchangeRate
	}
	return r
}
