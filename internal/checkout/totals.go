package checkout

import (
	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// Totals breaks down an order amount. All values are integer cents.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// ComputeTotals applies the tax rate and the tiered shipping fee: free at or
// above the threshold, a flat fee below it. Tax rounds half away from zero
// to whole cents.
func ComputeTotals(subtotalCents int64, cfg config.CheckoutConfig) Totals {
	tax := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromInt(cfg.TaxRateBasisPoints)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()

	var shipping int64
	if subtotalCents < cfg.FreeShippingMinCents {
		shipping = cfg.FlatShippingFeeCents
	}

	return Totals{
		SubtotalCents: subtotalCents,
		TaxCents:      tax,
		ShippingCents: shipping,
		TotalCents:    subtotalCents + tax + shipping,
	}
}
