package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/internal/orders"
	"github.com/mvaldesoto/storefront-backend/internal/payment"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	"github.com/mvaldesoto/storefront-backend/pkg/enums"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/types"
)

type stubStore struct {
	user      *shopping.User
	cart      []shopping.CartLine
	committed []orders.Order
	cleared   int
	addErr    error
}

func (s *stubStore) User() *shopping.User {
	return s.user
}

func (s *stubStore) Cart() []shopping.CartLine {
	return append([]shopping.CartLine(nil), s.cart...)
}

func (s *stubStore) AddOrder(ctx context.Context, order orders.Order) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.committed = append([]orders.Order{order}, s.committed...)
	return nil
}

func (s *stubStore) ClearCart(ctx context.Context) {
	s.cleared++
	s.cart = nil
}

type stubGateway struct {
	available bool
	widgets   int
}

func (g *stubGateway) Available(ctx context.Context) bool {
	return g.available
}

func (g *stubGateway) Widget(amountMinor int64, prefill payment.Prefill) payment.WidgetConfig {
	g.widgets++
	return payment.WidgetConfig{KeyID: "key_test", AmountMinor: amountMinor, Currency: "USD", Prefill: prefill}
}

func signedInStore(cartLines ...shopping.CartLine) *stubStore {
	return &stubStore{
		user: &shopping.User{ID: uuid.New(), Email: "j@example.com", FullName: "Jordan Blake"},
		cart: cartLines,
	}
}

func line(productID, name string, priceCents int64, qty int) shopping.CartLine {
	l := shopping.CartLine{ID: uuid.New(), Quantity: qty}
	l.Product.ID = productID
	l.Product.Name = name
	l.Product.PriceCents = priceCents
	l.Product.Images = []string{name + ".jpg"}
	return l
}

func shippingAddress() types.Address {
	return types.Address{
		FullName:   "Jordan Blake",
		Phone:      "555-0100",
		Line1:      "12 Elm St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
	}
}

func newTestService(t *testing.T, store *stubStore, gateway *stubGateway) *service {
	t.Helper()

	svc, err := NewService(store, gateway, defaultCheckoutConfig(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc.(*service)
}

func TestPlaceOrderRequiresSignedInUser(t *testing.T) {
	t.Parallel()

	store := &stubStore{cart: []shopping.CartLine{line("1", "Headphones", 4500, 1)}}
	svc := newTestService(t, store, &stubGateway{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestPlaceOrderRequiresNonEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, signedInStore(), &stubGateway{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderRejectsIncompleteAddress(t *testing.T) {
	t.Parallel()

	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{})

	addr := shippingAddress()
	addr.PostalCode = ""
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: addr,
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.committed) != 0 || store.cleared != 0 {
		t.Fatal("failed validation must not touch state")
	}
}

func TestPlaceOrderLocalMethodCommitsSynchronously(t *testing.T) {
	t.Parallel()

	store := signedInStore(line("1", "Headphones", 1500, 3))
	svc := newTestService(t, store, &stubGateway{})

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Order == nil || result.Pending != nil {
		t.Fatalf("expected committed order, got %+v", result)
	}

	order := *result.Order
	if order.PaymentStatus != enums.PaymentStatusCompleted {
		t.Fatalf("expected completed payment, got %s", order.PaymentStatus)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending fulfillment status, got %s", order.Status)
	}
	if order.SubtotalCents != 4500 || order.TaxCents != 360 || order.ShippingCents != 999 || order.TotalCents != 5859 {
		t.Fatalf("unexpected totals: %+v", order)
	}
	if order.BillingAddress != order.ShippingAddress {
		t.Fatal("billing should default to shipping")
	}
	if len(store.committed) != 1 || store.cleared != 1 {
		t.Fatalf("expected one commit and one cart clear, got %d/%d", len(store.committed), store.cleared)
	}
}

func TestPlaceOrderGatewayUnavailable(t *testing.T) {
	t.Parallel()

	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: false})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestPlaceOrderGatewayBelowMinimum(t *testing.T) {
	t.Parallel()

	// 50 cents subtotal, still under 1.00 after tax with free config.
	store := signedInStore(line("1", "Sticker", 50, 1))
	svc := newTestService(t, store, &stubGateway{available: true})
	svc.cfg.FlatShippingFeeCents = 0
	svc.cfg.TaxRateBasisPoints = 0

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.committed) != 0 {
		t.Fatal("sub-minimum order must not commit")
	}
}

func TestGatewayFlowCommitsOnlyOnConfirm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	gateway := &stubGateway{available: true}
	svc := newTestService(t, store, gateway)

	result, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pending == nil || result.Order != nil {
		t.Fatalf("expected pending payment, got %+v", result)
	}
	if result.Pending.Widget.AmountMinor != 5859 {
		t.Fatalf("widget amount should be the full total, got %d", result.Pending.Widget.AmountMinor)
	}
	if len(store.committed) != 0 || store.cleared != 0 {
		t.Fatal("nothing may commit before the gateway confirms")
	}

	order, err := svc.ConfirmPayment(ctx, result.Pending.AttemptID, "pay_abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.PaymentStatus != enums.PaymentStatusCompleted {
		t.Fatalf("expected completed payment, got %s", order.PaymentStatus)
	}
	if order.PaymentRef == nil || *order.PaymentRef != "pay_abc123" {
		t.Fatalf("payment ref not stored: %+v", order.PaymentRef)
	}
	if len(store.committed) != 1 || store.cleared != 1 {
		t.Fatal("confirm must commit exactly once and clear the cart")
	}

	// The attempt is consumed; a replayed confirmation changes nothing.
	if _, err := svc.ConfirmPayment(ctx, result.Pending.AttemptID, "pay_abc123"); err == nil {
		t.Fatal("expected replayed confirm to be rejected")
	}
	if len(store.committed) != 1 {
		t.Fatal("replayed confirm must not create a second order")
	}
}

func TestConfirmUsesSnapshotNotLiveCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: true})

	result, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cart changes while the widget is open.
	store.cart = []shopping.CartLine{line("2", "Watch", 99999, 7)}

	order, err := svc.ConfirmPayment(ctx, result.Pending.AttemptID, "pay_abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Lines) != 1 || order.Lines[0].ProductID != "1" || order.Lines[0].UnitPriceCents != 4500 {
		t.Fatalf("order must reflect the snapshot at initiation, got %+v", order.Lines)
	}
}

func TestStaleAttemptTokenNeverMutates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: true})

	if _, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.ConfirmPayment(ctx, uuid.New(), "pay_abc123")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(store.committed) != 0 || store.cleared != 0 {
		t.Fatal("stale token must not create or mutate an order")
	}
}

func TestCancelPreservesCartForRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: true})

	result, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CancelPayment(ctx, result.Pending.AttemptID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.committed) != 0 {
		t.Fatal("cancelled payment must not commit an order")
	}
	if len(store.cart) != 1 {
		t.Fatal("cart must survive a cancelled payment for retry")
	}

	if _, err := svc.ConfirmPayment(ctx, result.Pending.AttemptID, "pay_x"); err == nil {
		t.Fatal("expected confirm after cancel to be rejected")
	}
}

func TestNewCheckoutSupersedesPreviousAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: true})

	input := PlaceOrderInput{ShippingAddress: shippingAddress(), PaymentMethod: enums.PaymentMethodGateway}

	first, err := svc.PlaceOrder(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.PlaceOrder(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ConfirmPayment(ctx, first.Pending.AttemptID, "pay_old"); err == nil {
		t.Fatal("superseded attempt must be rejected")
	}
	if _, err := svc.ConfirmPayment(ctx, second.Pending.AttemptID, "pay_new"); err != nil {
		t.Fatalf("current attempt should confirm: %v", err)
	}
}

func TestExpiredAttemptIsRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := signedInStore(line("1", "Headphones", 4500, 1))
	svc := newTestService(t, store, &stubGateway{available: true})

	base := time.Now()
	svc.now = func() time.Time { return base }

	result, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(svc.cfg.AttemptTTL() + time.Minute) }

	_, err = svc.ConfirmPayment(ctx, result.Pending.AttemptID, "pay_late")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for expired attempt, got %v", err)
	}
	if len(store.committed) != 0 {
		t.Fatal("expired attempt must not commit")
	}
}
