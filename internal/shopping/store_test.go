package shopping

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/orders"
	"github.com/mvaldesoto/storefront-backend/pkg/enums"
	"github.com/mvaldesoto/storefront-backend/pkg/kvstore"
)

func newTestStore(t *testing.T) (*Store, *kvstore.MemoryStore) {
	t.Helper()

	kv := kvstore.NewMemory()
	store, err := NewStore(context.Background(), Params{KV: kv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store, kv
}

func product(id string, priceCents int64) catalog.Product {
	return catalog.Product{
		ID:         id,
		Name:       "Product " + id,
		PriceCents: priceCents,
		Images:     []string{id + ".jpg"},
		IsActive:   true,
	}
}

func testOrder(userID uuid.UUID) orders.Order {
	return orders.Order{
		ID:            uuid.New(),
		UserID:        userID,
		OrderNumber:   orders.NewOrderNumber("ORD", time.Now()),
		Status:        enums.OrderStatusPending,
		SubtotalCents: 1000,
		TaxCents:      80,
		ShippingCents: 999,
		TotalCents:    2079,
		Lines: []orders.OrderLine{
			{ID: uuid.New(), ProductID: "1", ProductName: "P1", Quantity: 1, UnitPriceCents: 1000, LineTotalCents: 1000},
		},
		PaymentMethod: enums.PaymentMethodCard,
		PaymentStatus: enums.PaymentStatusCompleted,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestAddToCartMergesRepeatedAdds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.AddToCart(ctx, product("1", 1000), 2)
	store.AddToCart(ctx, product("1", 1000), 3)
	store.AddToCart(ctx, product("1", 1000), 1)

	cart := store.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart))
	}
	if cart[0].Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", cart[0].Quantity)
	}
}

func TestAddToCartClampsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.AddToCart(ctx, product("1", 1000), 0)
	store.AddToCart(ctx, product("2", 500), -4)

	for _, line := range store.Cart() {
		if line.Quantity != 1 {
			t.Fatalf("expected clamp to 1, got %d for %s", line.Quantity, line.Product.ID)
		}
	}
}

func TestCartDerivedValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.AddToCart(ctx, product("1", 1000), 2)
	store.AddToCart(ctx, product("2", 500), 3)

	if got := store.CartTotalCents(); got != 3500 {
		t.Fatalf("expected total 3500, got %d", got)
	}
	if got := store.CartItemsCount(); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}

	store.UpdateCartQuantity(ctx, "2", 1)
	if got := store.CartTotalCents(); got != 2500 {
		t.Fatalf("total stale after mutation: %d", got)
	}
}

func TestUpdateCartQuantityZeroOrNegativeRemoves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.AddToCart(ctx, product("1", 1000), 2)
	store.AddToCart(ctx, product("2", 500), 2)

	store.UpdateCartQuantity(ctx, "1", 0)
	store.UpdateCartQuantity(ctx, "2", -5)

	if got := len(store.Cart()); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
}

func TestUpdateCartQuantityUnknownProductIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.AddToCart(ctx, product("1", 1000), 2)
	store.UpdateCartQuantity(ctx, "missing", 7)

	cart := store.Cart()
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("unexpected cart state: %+v", cart)
	}
}

func TestRemoveFromCartAbsentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	store.RemoveFromCart(ctx, "anything")
	if got := len(store.Cart()); got != 0 {
		t.Fatalf("expected empty cart, got %d", got)
	}
}

func TestAddToWishlistIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	first := store.AddToWishlist(ctx, product("1", 1000))
	second := store.AddToWishlist(ctx, product("1", 1000))

	if first.ID != second.ID {
		t.Fatal("expected the existing entry back on repeat adds")
	}
	if got := len(store.Wishlist()); got != 1 {
		t.Fatalf("expected one entry, got %d", got)
	}
	if !store.IsInWishlist("1") {
		t.Fatal("expected membership for product 1")
	}
	if store.IsInWishlist("2") {
		t.Fatal("unexpected membership for product 2")
	}

	store.RemoveFromWishlist(ctx, "1")
	if store.IsInWishlist("1") {
		t.Fatal("expected removal")
	}
}

func TestAddOrderPrependsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)
	userID := uuid.New()

	first := testOrder(userID)
	second := testOrder(userID)

	if err := store.AddOrder(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddOrder(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := store.Orders()
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatal("orders not in newest-first insertion order")
	}
}

func TestAddOrderRejectsInvalidTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	bad := testOrder(uuid.New())
	bad.TotalCents = 1
	if err := store.AddOrder(ctx, bad); err == nil {
		t.Fatal("expected invalid order to be rejected")
	}
	if got := len(store.Orders()); got != 0 {
		t.Fatalf("rejected order leaked into history: %d", got)
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)
	order := testOrder(uuid.New())
	if err := store.AddOrder(ctx, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusProcessing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusDelivered); err == nil {
		t.Fatal("expected processing -> delivered to be rejected")
	}
	if err := store.UpdateOrderStatus(ctx, uuid.New(), enums.OrderStatusShipped); err == nil {
		t.Fatal("expected unknown order to error")
	}

	if got := store.Orders()[0].Status; got != enums.OrderStatusProcessing {
		t.Fatalf("unexpected status %s", got)
	}
}

func TestSignOutPreservesCollections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	user := &User{ID: uuid.New(), Email: "j@example.com", FullName: "Jordan Blake"}
	store.SetUser(ctx, user)
	store.AddToCart(ctx, product("1", 1000), 2)
	store.AddToWishlist(ctx, product("2", 500))

	store.SetUser(ctx, nil)

	if store.User() != nil {
		t.Fatal("expected guest after sign-out")
	}
	if got := len(store.Cart()); got != 1 {
		t.Fatalf("cart cleared on sign-out: %d lines", got)
	}
	if got := len(store.Wishlist()); got != 1 {
		t.Fatalf("wishlist cleared on sign-out: %d entries", got)
	}
}

func TestGuestOwnershipIsAbsentUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)

	guestLine := store.AddToCart(ctx, product("1", 1000), 1)
	if guestLine.UserID != nil {
		t.Fatal("guest line should carry no owner id")
	}

	user := &User{ID: uuid.New(), Email: "j@example.com", FullName: "Jordan Blake"}
	store.SetUser(ctx, user)
	ownedLine := store.AddToCart(ctx, product("2", 500), 1)
	if ownedLine.UserID == nil || *ownedLine.UserID != user.ID {
		t.Fatalf("expected owner %s, got %+v", user.ID, ownedLine.UserID)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, kv := newTestStore(t)

	user := &User{ID: uuid.New(), Email: "j@example.com", FullName: "Jordan Blake"}
	store.SetUser(ctx, user)
	store.AddToCart(ctx, product("1", 1000), 2)
	store.AddToWishlist(ctx, product("2", 500))
	if err := store.AddOrder(ctx, testOrder(user.ID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.SetSearchQuery("headphones")

	reloaded, err := NewStore(ctx, Params{KV: kv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := store.Snapshot()
	got := reloaded.Snapshot()

	// UI flags are ephemeral and start fresh.
	want.UI = UIState{}
	if !reflect.DeepEqual(want.Cart, got.Cart) {
		t.Fatalf("cart did not round-trip:\nwant %+v\ngot  %+v", want.Cart, got.Cart)
	}
	if !reflect.DeepEqual(want.Wishlist, got.Wishlist) {
		t.Fatalf("wishlist did not round-trip")
	}
	if len(got.Orders) != 1 || got.Orders[0].OrderNumber != want.Orders[0].OrderNumber {
		t.Fatalf("orders did not round-trip")
	}
	if got.User == nil || got.User.ID != user.ID {
		t.Fatalf("user did not round-trip: %+v", got.User)
	}
	if got.UI.SearchQuery != "" {
		t.Fatal("UI flags should not persist")
	}
}

func TestCorruptBlobFallsBackPerCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()
	if err := kv.Set(ctx, keyCart, "{definitely not json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := kv.Set(ctx, keyWishlist, `[{"id":"`+uuid.NewString()+`","product":{"id":"2","price_cents":500,"images":["b.jpg"]}}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := NewStore(ctx, Params{KV: kv})
	if err != nil {
		t.Fatalf("corrupt blob crashed initialization: %v", err)
	}

	if got := len(store.Cart()); got != 0 {
		t.Fatalf("expected empty cart fallback, got %d", got)
	}
	if got := len(store.Wishlist()); got != 1 {
		t.Fatalf("healthy collection affected by sibling corruption: %d", got)
	}
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, kv := newTestStore(t)
	kv.FailWrites = errors.New("quota exceeded")

	store.AddToCart(ctx, product("1", 1000), 2)

	if got := len(store.Cart()); got != 1 {
		t.Fatal("in-memory state must stay authoritative when persistence fails")
	}
	if err := store.Flush(ctx); err == nil {
		t.Fatal("expected flush to surface the write failures")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t)
	store.AddToCart(ctx, product("1", 1000), 1)

	snap := store.Snapshot()
	snap.Cart[0].Quantity = 99

	if store.Cart()[0].Quantity != 1 {
		t.Fatal("snapshot shares storage with the store")
	}
}
