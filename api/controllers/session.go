package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mvaldesoto/storefront-backend/api/responses"
	"github.com/mvaldesoto/storefront-backend/api/validators"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

type signInRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"max=120"`
	Avatar   *string `json:"avatar,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

type sessionResponse struct {
	User *shopping.User `json:"user"`
}

// SessionGet returns the signed-in user, or null for a guest session.
func SessionGet(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}
		responses.WriteSuccess(w, sessionResponse{User: store.User()})
	}
}

// SessionSignIn establishes the profile for this device. There is no password
// check; identity is whatever the caller claims, matching a demo storefront.
func SessionSignIn(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		var payload signInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(payload.Email))
		name := validators.SanitizeString(payload.FullName, 120)
		if name == "" {
			name = email[:strings.Index(email, "@")]
		}

		user := &shopping.User{
			ID:       uuid.New(),
			Email:    email,
			FullName: name,
			Avatar:   payload.Avatar,
			Phone:    payload.Phone,
		}
		store.SetUser(ctx, user)

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, user.ID.String()), "user signed in")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{User: user})
	}
}

// SessionSignOut clears the profile. Cart, wishlist, and order history stay.
func SessionSignOut(store *shopping.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping store unavailable"))
			return
		}

		store.SetUser(ctx, nil)
		responses.WriteSuccess(w, sessionResponse{User: nil})
	}
}
