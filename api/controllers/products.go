package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldesoto/storefront-backend/api/responses"
	"github.com/mvaldesoto/storefront-backend/api/validators"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

const maxProductPageSize = 100

type productDetailResponse struct {
	Product catalog.Product  `json:"product"`
	Reviews []catalog.Review `json:"reviews"`
}

// ProductsList returns the catalog, optionally filtered by category or a
// search term. Category filtering wins when both are present.
func ProductsList(provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if provider == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxProductPageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var products []catalog.Product
		switch {
		case r.URL.Query().Get("category_id") != "":
			categoryID := r.URL.Query().Get("category_id")
			if _, ok := provider.FindCategoryByID(ctx, categoryID); !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
				return
			}
			products = provider.ListProductsByCategory(ctx, categoryID)
		case r.URL.Query().Get("q") != "":
			query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
			products = provider.SearchProducts(ctx, query)
		default:
			products = provider.ListProducts(ctx)
		}

		if limit > 0 && len(products) > limit {
			products = products[:limit]
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductGet returns one product with its reviews.
func ProductGet(provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if provider == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		product, ok := provider.FindProductByID(ctx, productID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, productDetailResponse{
			Product: *product,
			Reviews: provider.ReviewsForProduct(ctx, productID),
		})
	}
}

// CategoriesList returns every category.
func CategoriesList(provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if provider == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, provider.ListCategories(ctx))
	}
}
