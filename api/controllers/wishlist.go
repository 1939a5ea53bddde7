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

type addWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistGet returns every saved entry, oldest first.
func WishlistGet(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Wishlist())
	}
}

// WishlistAdd saves a product. Re-adding an already saved product is a no-op.
func WishlistAdd(store *shopping.Store, provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil || provider == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		var payload addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, ok := provider.FindProductByID(ctx, payload.ProductID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		entry := store.AddToWishlist(ctx, *product)
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// WishlistRemove drops the entry for the given product.
func WishlistRemove(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		store.RemoveFromWishlist(ctx, chi.URLParam(r, "productID"))
		responses.WriteSuccess(w, store.Wishlist())
	}
}
