package controllers

import (
	"net/http"

	"github.com/mvaldesoto/storefront-backend/api/responses"
	"github.com/mvaldesoto/storefront-backend/api/validators"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

type updateUIRequest struct {
	CartOpen      *bool   `json:"cart_open,omitempty"`
	AuthModalOpen *bool   `json:"auth_modal_open,omitempty"`
	SearchQuery   *string `json:"search_query,omitempty"`
}

// StateSnapshot returns the whole shopping aggregate with derived values in
// one shot, the shape a storefront hydrates from on load.
func StateSnapshot(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// StateUpdateUI patches the ephemeral view flags. Omitted fields keep their
// current value.
func StateUpdateUI(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		var payload updateUIRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if payload.CartOpen != nil {
			store.SetCartOpen(*payload.CartOpen)
		}
		if payload.AuthModalOpen != nil {
			store.SetAuthModalOpen(*payload.AuthModalOpen)
		}
		if payload.SearchQuery != nil {
			store.SetSearchQuery(validators.SanitizeString(*payload.SearchQuery, 200))
		}

		responses.WriteSuccess(w, store.UI())
	}
}
