package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/orders"
	"github.com/mvaldesoto/storefront-backend/pkg/enums"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/kvstore"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
	"github.com/mvaldesoto/storefront-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// Keys the durable collections persist under.
const (
	keyCart     = "cart"
	keyWishlist = "wishlist"
	keyOrders   = "orders"
	keyUser     = "user"
)

// Params groups the Store dependencies.
type Params struct {
	KV      kvstore.Store
	Logger  *logger.Logger
	Metrics *metrics.ShoppingMetrics
}

// Store owns the durable shopping collections: cart, wishlist, order history
// and the signed-in user. Every mutation is a single read-modify-write under
// one lock and results in the touched collection being written back to the
// key-value store. The in-memory state stays authoritative when a write
// fails; persistence problems degrade to warnings.
type Store struct {
	mu      sync.Mutex
	kv      kvstore.Store
	logg    *logger.Logger
	metrics *metrics.ShoppingMetrics

	user     *User
	cart     []CartLine
	wishlist []WishlistEntry
	orders   []orders.Order
	ui       UIState
}

// NewStore loads each durable collection from the key-value store. A blob
// that fails to parse resets that collection alone; the rest load normally.
func NewStore(ctx context.Context, params Params) (*Store, error) {
	if params.KV == nil {
		return nil, fmt.Errorf("key-value store required")
	}

	s := &Store{
		kv:      params.KV,
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	loadCollection(ctx, s, keyCart, &s.cart)
	loadCollection(ctx, s, keyWishlist, &s.wishlist)
	loadCollection(ctx, s, keyOrders, &s.orders)

	var user User
	if found := loadCollection(ctx, s, keyUser, &user); found {
		s.user = &user
	}

	return s, nil
}

func loadCollection[T any](ctx context.Context, s *Store, key string, dest *T) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.warn(ctx, key, "loading collection failed, starting empty", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		var zero T
		*dest = zero
		s.warn(ctx, key, "corrupt collection blob, starting empty", err)
		return false
	}
	return true
}

// AddToCart merges the product into the cart. Quantities below one clamp to
// one rather than rejecting the call.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product, quantity int) CartLine {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("add_to_cart")

	for i := range s.cart {
		if s.cart[i].Product.ID == product.ID {
			s.cart[i].Quantity += quantity
			s.persistCart(ctx)
			return s.cart[i]
		}
	}

	line := CartLine{
		ID:       uuid.New(),
		UserID:   s.ownerID(),
		Product:  product,
		Quantity: quantity,
	}
	s.cart = append(s.cart, line)
	s.persistCart(ctx)
	return line
}

// RemoveFromCart drops the line for the product; absent lines are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("remove_from_cart")

	filtered := s.cart[:0]
	for _, line := range s.cart {
		if line.Product.ID != productID {
			filtered = append(filtered, line)
		}
	}
	s.cart = filtered
	s.persistCart(ctx)
}

// UpdateCartQuantity sets the line quantity absolutely. Zero or negative
// quantities remove the line, exactly as RemoveFromCart would.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("update_cart_quantity")

	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart[i].Quantity = quantity
			s.persistCart(ctx)
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("clear_cart")
	s.cart = nil
	s.persistCart(ctx)
}

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.cart...)
}

// CartTotalCents recomputes the cart total from the live lines.
func (s *Store) CartTotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

// CartItemsCount sums line quantities, not line count.
func (s *Store) CartItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartCount(s.cart)
}

func cartTotal(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.LineTotalCents()
	}
	return total
}

func cartCount(lines []CartLine) int {
	var count int
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// AddToWishlist is idempotent per product id.
func (s *Store) AddToWishlist(ctx context.Context, product catalog.Product) WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("add_to_wishlist")

	for _, entry := range s.wishlist {
		if entry.Product.ID == product.ID {
			return entry
		}
	}

	entry := WishlistEntry{
		ID:      uuid.New(),
		UserID:  s.ownerID(),
		Product: product,
	}
	s.wishlist = append(s.wishlist, entry)
	s.persistWishlist(ctx)
	return entry
}

// RemoveFromWishlist drops the entry if present; no-op otherwise.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("remove_from_wishlist")

	filtered := s.wishlist[:0]
	for _, entry := range s.wishlist {
		if entry.Product.ID != productID {
			filtered = append(filtered, entry)
		}
	}
	s.wishlist = filtered
	s.persistWishlist(ctx)
}

// IsInWishlist reports wishlist membership for the product.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.wishlist {
		if entry.Product.ID == productID {
			return true
		}
	}
	return false
}

// Wishlist returns a copy of the wishlist entries.
func (s *Store) Wishlist() []WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]WishlistEntry(nil), s.wishlist...)
}

// AddOrder prepends to order history. Insertion order is the contract every
// consumer observes; the store never resequences by timestamp.
func (s *Store) AddOrder(ctx context.Context, order orders.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("add_order")
	s.orders = append([]orders.Order{order.Clone()}, s.orders...)
	s.persistOrders(ctx)
	return nil
}

// Orders returns a copy of order history, newest first.
func (s *Store) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]orders.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order.Clone())
	}
	return out
}

// UpdateOrderStatus applies an external fulfillment transition. It is the
// only mutation permitted on a committed order.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) error {
	if !target.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}
		if !s.orders[i].Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", s.orders[i].Status, target))
		}
		s.orders[i].Status = target
		s.metrics.IncMutation("update_order_status")
		s.persistOrders(ctx)
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
}

// SetUser replaces the signed-in user. Passing nil signs out; by policy this
// preserves the cart, wishlist, and order history.
func (s *Store) SetUser(ctx context.Context, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncMutation("set_user")

	if user == nil {
		s.user = nil
		if err := s.kv.Delete(ctx, keyUser); err != nil {
			s.warn(ctx, keyUser, "removing persisted user failed", err)
			s.metrics.IncPersistFailure(keyUser)
		}
		return
	}

	copied := *user
	s.user = &copied
	s.persist(ctx, keyUser, s.user)
}

// User returns a copy of the signed-in user, or nil for guests.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// SetCartOpen toggles the cart panel flag.
func (s *Store) SetCartOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.CartOpen = open
}

// SetAuthModalOpen toggles the auth modal flag.
func (s *Store) SetAuthModalOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.AuthModalOpen = open
}

// SetSearchQuery records the current search text.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.SearchQuery = query
}

// UI returns the current ephemeral flags.
func (s *Store) UI() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

// Snapshot assembles a consistent read view with derived values.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Cart:           append([]CartLine(nil), s.cart...),
		Wishlist:       append([]WishlistEntry(nil), s.wishlist...),
		CartTotalCents: cartTotal(s.cart),
		CartItemsCount: cartCount(s.cart),
		UI:             s.ui,
	}
	for _, order := range s.orders {
		snap.Orders = append(snap.Orders, order.Clone())
	}
	if s.user != nil {
		copied := *s.user
		snap.User = &copied
	}
	return snap
}

// Flush writes every durable collection, collecting any failures. Called at
// shutdown so no mutation is lost on a normal exit.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	err = multierr.Append(err, s.persistErr(ctx, keyCart, s.cart))
	err = multierr.Append(err, s.persistErr(ctx, keyWishlist, s.wishlist))
	err = multierr.Append(err, s.persistErr(ctx, keyOrders, s.orders))
	if s.user != nil {
		err = multierr.Append(err, s.persistErr(ctx, keyUser, s.user))
	}
	return err
}

func (s *Store) ownerID() *uuid.UUID {
	if s.user == nil {
		return nil
	}
	id := s.user.ID
	return &id
}

func (s *Store) persistCart(ctx context.Context)     { s.persist(ctx, keyCart, s.cart) }
func (s *Store) persistWishlist(ctx context.Context) { s.persist(ctx, keyWishlist, s.wishlist) }
func (s *Store) persistOrders(ctx context.Context)   { s.persist(ctx, keyOrders, s.orders) }

func (s *Store) persist(ctx context.Context, key string, value any) {
	if err := s.persistErr(ctx, key, value); err != nil {
		s.warn(ctx, key, "persisting collection failed, in-memory state remains authoritative", err)
		s.metrics.IncPersistFailure(key)
	}
}

func (s *Store) persistErr(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) warn(ctx context.Context, key, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"collection": key,
		"error":      err.Error(),
	})
	s.logg.Warn(ctx, msg)
}
