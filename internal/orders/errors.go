package orders

import "errors"

var (
	errNegativeAmount    = errors.New("order amounts cannot be negative")
	errTotalMismatch     = errors.New("order total must equal subtotal + tax + shipping")
	errBadStatus         = errors.New("unknown order status")
	errBadPaymentStatus  = errors.New("unknown payment status")
	errNoLines           = errors.New("order must contain at least one line")
	errBadLineQuantity   = errors.New("order line quantity must be positive")
	errLineTotalMismatch = errors.New("order line total must equal unit price times quantity")
)
