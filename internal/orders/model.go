package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/pkg/enums"
	"github.com/mvaldesoto/storefront-backend/pkg/types"
)

// OrderLine is a frozen snapshot of one cart line at placement time. It is
// deliberately decoupled from the live catalog record so later price or
// image changes never rewrite history.
type OrderLine struct {
	ID             uuid.UUID `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductImage   string    `json:"product_image"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	LineTotalCents int64     `json:"line_total_cents"`
}

// Order is an immutable historical record of a completed checkout. Only
// Status may change afterwards, driven by an external fulfillment process.
type Order struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	OrderNumber     string              `json:"order_number"`
	Status          enums.OrderStatus   `json:"status"`
	SubtotalCents   int64               `json:"subtotal_cents"`
	TaxCents        int64               `json:"tax_cents"`
	ShippingCents   int64               `json:"shipping_cents"`
	TotalCents      int64               `json:"total_cents"`
	ShippingAddress types.Address       `json:"shipping_address"`
	BillingAddress  types.Address       `json:"billing_address"`
	Lines           []OrderLine         `json:"lines"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	PaymentRef      *string             `json:"payment_ref,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Clone returns a deep copy so callers cannot reach into stored history.
func (o Order) Clone() Order {
	out := o
	out.Lines = append([]OrderLine(nil), o.Lines...)
	if o.PaymentRef != nil {
		ref := *o.PaymentRef
		out.PaymentRef = &ref
	}
	return out
}

// Validate checks the arithmetic and lifecycle invariants an order must hold.
func (o Order) Validate() error {
	if o.SubtotalCents < 0 || o.TaxCents < 0 || o.ShippingCents < 0 || o.TotalCents < 0 {
		return errNegativeAmount
	}
	if o.SubtotalCents+o.TaxCents+o.ShippingCents != o.TotalCents {
		return errTotalMismatch
	}
	if !o.Status.IsValid() {
		return errBadStatus
	}
	if !o.PaymentStatus.IsValid() {
		return errBadPaymentStatus
	}
	if len(o.Lines) == 0 {
		return errNoLines
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return errBadLineQuantity
		}
		if line.LineTotalCents != line.UnitPriceCents*int64(line.Quantity) {
			return errLineTotalMismatch
		}
	}
	return nil
}
