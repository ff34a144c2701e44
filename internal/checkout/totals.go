// Package checkout computes cart totals against a delivery rule and gates
// the steps of the checkout wizard.
package checkout

import (
	"github.com/shopspring/decimal"

	"campania/internal/model"
)

type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	Fee          float64 `json:"fee"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
	BelowMinimum bool    `json:"belowMinimum"`
}

const Currency = "EUR"

// Compute prices items for the given mode. A nil rule or pickup mode means
// no fee and no minimum order value.
func Compute(items []model.Item, rule *model.DeliveryRule, mode string) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromFloat(it.Qty))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	fee := decimal.Zero
	below := false
	if mode == model.ModeDelivery && rule != nil {
		freeFrom := decimal.NewFromFloat(rule.FreeFrom)
		if !(freeFrom.IsPositive() && subtotal.GreaterThanOrEqual(freeFrom)) {
			fee = decimal.NewFromFloat(rule.Fee)
		}
		mbw := decimal.NewFromFloat(rule.MBW)
		below = mbw.IsPositive() && subtotal.LessThan(mbw)
	}

	return Totals{
		Subtotal:     subtotal.InexactFloat64(),
		Fee:          fee.InexactFloat64(),
		Total:        subtotal.Add(fee).Round(2).InexactFloat64(),
		Currency:     Currency,
		BelowMinimum: below,
	}
}
