package shopping

import (
	"github.com/google/uuid"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/orders"
)

// User is the signed-in profile. A nil *User everywhere means guest.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Avatar   *string   `json:"avatar,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
}

// CartLine is one product-and-quantity entry in the active cart. UserID is
// nil for lines created while no user was signed in; guest ownership is the
// absence of an owner, not a sentinel value.
type CartLine struct {
	ID       uuid.UUID       `json:"id"`
	UserID   *uuid.UUID      `json:"user_id,omitempty"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotalCents is the derived price of the line.
func (l CartLine) LineTotalCents() int64 {
	return l.Product.PriceCents * int64(l.Quantity)
}

// WishlistEntry is a saved-for-later product reference.
type WishlistEntry struct {
	ID      uuid.UUID       `json:"id"`
	UserID  *uuid.UUID      `json:"user_id,omitempty"`
	Product catalog.Product `json:"product"`
}

// UIState carries ephemeral view flags. They live in memory only and are
// never part of the durable snapshot.
type UIState struct {
	CartOpen      bool   `json:"cart_open"`
	AuthModalOpen bool   `json:"auth_modal_open"`
	SearchQuery   string `json:"search_query"`
}

// Snapshot is a read-only view of the aggregate plus its derived values.
type Snapshot struct {
	User           *User           `json:"user,omitempty"`
	Cart           []CartLine      `json:"cart"`
	Wishlist       []WishlistEntry `json:"wishlist"`
	Orders         []orders.Order  `json:"orders"`
	CartTotalCents int64           `json:"cart_total_cents"`
	CartItemsCount int             `json:"cart_items_count"`
	UI             UIState         `json:"ui"`
}
