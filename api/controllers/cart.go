package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldesoto/storefront-backend/api/responses"
	"github.com/mvaldesoto/storefront-backend/api/validators"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items      []shopping.CartLine `json:"items"`
	TotalCents int64               `json:"total_cents"`
	ItemsCount int                 `json:"items_count"`
}

func cartView(store *shopping.Store) cartResponse {
	return cartResponse{
		Items:      store.Cart(),
		TotalCents: store.CartTotalCents(),
		ItemsCount: store.CartItemsCount(),
	}
}

// CartGet returns the active cart with its derived totals.
func CartGet(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}
		responses.WriteSuccess(w, cartView(store))
	}
}

// CartAddItem resolves the product and merges it into the cart. A quantity
// below one is treated as one.
func CartAddItem(store *shopping.Store, provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil || provider == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, ok := provider.FindProductByID(ctx, payload.ProductID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		store.AddToCart(ctx, *product, payload.Quantity)
		responses.WriteSuccessStatus(w, http.StatusCreated, cartView(store))
	}
}

// CartUpdateItem sets the line quantity. Zero or below removes the line.
func CartUpdateItem(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store.UpdateCartQuantity(ctx, chi.URLParam(r, "productID"), payload.Quantity)
		responses.WriteSuccess(w, cartView(store))
	}
}

// CartRemoveItem drops the line for the given product.
func CartRemoveItem(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		store.RemoveFromCart(ctx, chi.URLParam(r, "productID"))
		responses.WriteSuccess(w, cartView(store))
	}
}

// CartClear empties the cart.
func CartClear(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		store.ClearCart(ctx)
		responses.WriteSuccess(w, cartView(store))
	}
}
