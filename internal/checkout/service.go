package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/internal/orders"
	"github.com/mvaldesoto/storefront-backend/internal/payment"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/mvaldesoto/storefront-backend/pkg/enums"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
	"github.com/mvaldesoto/storefront-backend/pkg/metrics"
	"github.com/mvaldesoto/storefront-backend/pkg/types"
)

type stateStore interface {
	User() *shopping.User
	Cart() []shopping.CartLine
	AddOrder(ctx context.Context, order orders.Order) error
	ClearCart(ctx context.Context)
}

// PlaceOrderInput captures the checkout form.
type PlaceOrderInput struct {
	ShippingAddress types.Address
	BillingAddress  *types.Address
	PaymentMethod   enums.PaymentMethod
}

// PendingPayment is returned when the order awaits the external widget.
type PendingPayment struct {
	AttemptID  uuid.UUID            `json:"attempt_id"`
	Widget     payment.WidgetConfig `json:"widget"`
	TotalCents int64                `json:"total_cents"`
	ExpiresAt  time.Time            `json:"expires_at"`
}

// PlaceOrderResult carries either a committed order or a pending payment,
// never both.
type PlaceOrderResult struct {
	Order   *orders.Order   `json:"order,omitempty"`
	Pending *PendingPayment `json:"pending,omitempty"`
}

// Service assembles orders from the live cart. Gateway-paid orders commit
// only after ConfirmPayment delivers a success token; failure or dismissal
// commits nothing and leaves the cart intact for retry.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	ConfirmPayment(ctx context.Context, attemptID uuid.UUID, paymentRef string) (*orders.Order, error)
	CancelPayment(ctx context.Context, attemptID uuid.UUID) error
}

// attempt freezes everything needed to assemble the order at the moment
// checkout started. Later cart or catalog changes cannot reach it.
type attempt struct {
	id        uuid.UUID
	userID    uuid.UUID
	lines     []orders.OrderLine
	totals    Totals
	shipping  types.Address
	billing   types.Address
	expiresAt time.Time
}

type service struct {
	store   stateStore
	gateway payment.Gateway
	cfg     config.CheckoutConfig
	logg    *logger.Logger
	metrics *metrics.ShoppingMetrics
	now     func() time.Time

	mu      sync.Mutex
	current *attempt
}

// NewService builds the checkout service.
func NewService(store stateStore, gateway payment.Gateway, cfg config.CheckoutConfig, logg *logger.Logger, m *metrics.ShoppingMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("shopping store required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	return &service{
		store:   store,
		gateway: gateway,
		cfg:     cfg,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	user := s.store.User()
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to continue with checkout")
	}

	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	shipping := input.ShippingAddress.Normalize()
	if err := shipping.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address")
	}

	billing := shipping
	if input.BillingAddress != nil {
		billing = input.BillingAddress.Normalize()
		if err := billing.Validate(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing address")
		}
	}

	cart := s.store.Cart()
	if len(cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := snapshotLines(cart)
	totals := ComputeTotals(lineSubtotal(lines), s.cfg)

	if !input.PaymentMethod.RequiresGateway() {
		order := s.assemble(user.ID, lines, totals, shipping, billing, input.PaymentMethod, enums.PaymentStatusCompleted, nil)
		if err := s.commit(ctx, order); err != nil {
			return nil, err
		}
		return &PlaceOrderResult{Order: &order}, nil
	}

	if !s.gateway.Available(ctx) {
		s.metrics.IncCheckoutAbort("gateway_unavailable")
		return nil, pkgerrors.New(pkgerrors.CodeUnavailable, "payment gateway is unavailable, try again later")
	}
	if totals.TotalCents < s.cfg.GatewayMinimumCents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total is below the gateway minimum")
	}

	pending := s.beginAttempt(user.ID, lines, totals, shipping, billing)
	pending.Widget = s.gateway.Widget(totals.TotalCents, payment.Prefill{
		Name:    user.FullName,
		Email:   user.Email,
		Contact: shipping.Phone,
	})

	if s.logg != nil {
		s.logg.Info(s.logg.WithAttemptID(ctx, pending.AttemptID.String()), "checkout attempt started")
	}
	return &PlaceOrderResult{Pending: &pending}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, attemptID uuid.UUID, paymentRef string) (*orders.Order, error) {
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment reference is required")
	}

	snapshot, err := s.takeAttempt(attemptID, "stale_confirm")
	if err != nil {
		return nil, err
	}

	order := s.assemble(snapshot.userID, snapshot.lines, snapshot.totals, snapshot.shipping, snapshot.billing,
		enums.PaymentMethodGateway, enums.PaymentStatusCompleted, &paymentRef)
	if err := s.commit(ctx, order); err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithAttemptID(ctx, attemptID.String()), "gateway payment confirmed")
	}
	return &order, nil
}

func (s *service) CancelPayment(ctx context.Context, attemptID uuid.UUID) error {
	if _, err := s.takeAttempt(attemptID, "gateway_cancelled"); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithAttemptID(ctx, attemptID.String()), "checkout attempt cancelled, cart preserved")
	}
	return nil
}

func (s *service) beginAttempt(userID uuid.UUID, lines []orders.OrderLine, totals Totals, shipping, billing types.Address) PendingPayment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.metrics.IncCheckoutAbort("superseded")
	}

	s.current = &attempt{
		id:        uuid.New(),
		userID:    userID,
		lines:     lines,
		totals:    totals,
		shipping:  shipping,
		billing:   billing,
		expiresAt: s.now().Add(s.cfg.AttemptTTL()),
	}

	return PendingPayment{
		AttemptID:  s.current.id,
		TotalCents: totals.TotalCents,
		ExpiresAt:  s.current.expiresAt,
	}
}

// takeAttempt consumes the live attempt when the token matches. Mismatched
// or expired tokens leave no trace on cart or history.
func (s *service) takeAttempt(attemptID uuid.UUID, abortReason string) (*attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.id != attemptID {
		s.metrics.IncCheckoutAbort(abortReason)
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout attempt is stale or unknown")
	}
	if s.now().After(s.current.expiresAt) {
		s.current = nil
		s.metrics.IncCheckoutAbort("expired")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout attempt has expired")
	}

	taken := s.current
	s.current = nil
	return taken, nil
}

func (s *service) assemble(userID uuid.UUID, lines []orders.OrderLine, totals Totals, shipping, billing types.Address, method enums.PaymentMethod, status enums.PaymentStatus, paymentRef *string) orders.Order {
	now := s.now().UTC()
	return orders.Order{
		ID:              uuid.New(),
		UserID:          userID,
		OrderNumber:     orders.NewOrderNumber(s.cfg.OrderNumberPrefix, now),
		Status:          enums.OrderStatusPending,
		SubtotalCents:   totals.SubtotalCents,
		TaxCents:        totals.TaxCents,
		ShippingCents:   totals.ShippingCents,
		TotalCents:      totals.TotalCents,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Lines:           append([]orders.OrderLine(nil), lines...),
		PaymentMethod:   method,
		PaymentStatus:   status,
		PaymentRef:      paymentRef,
		CreatedAt:       now,
	}
}

func (s *service) commit(ctx context.Context, order orders.Order) error {
	if err := s.store.AddOrder(ctx, order); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "commit order")
	}
	s.store.ClearCart(ctx)
	s.metrics.IncOrderPlaced(order.PaymentMethod.String())
	return nil
}

func snapshotLines(cart []shopping.CartLine) []orders.OrderLine {
	lines := make([]orders.OrderLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, orders.OrderLine{
			ID:             uuid.New(),
			ProductID:      item.Product.ID,
			ProductName:    item.Product.Name,
			ProductImage:   item.Product.FeaturedImage(),
			Quantity:       item.Quantity,
			UnitPriceCents: item.Product.PriceCents,
			LineTotalCents: item.LineTotalCents(),
		})
	}
	return lines
}

func lineSubtotal(lines []orders.OrderLine) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineTotalCents
	}
	return subtotal
}
