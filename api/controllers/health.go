package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mvaldesoto/storefront-backend/api/responses"
	"github.com/mvaldesoto/storefront-backend/pkg/config"
	pkgerrors "github.com/mvaldesoto/storefront-backend/pkg/errors"
	"github.com/mvaldesoto/storefront-backend/pkg/kvstore"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the persistence backend with a short deadline so a
// wedged store fails the check instead of hanging it.
func HealthReady(cfg *config.Config, logg *logger.Logger, kv kvstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if kv != nil {
			if _, _, err := kv.Get(ctx, "healthcheck"); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "storage not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
