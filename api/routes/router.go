package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvaldesoto/storefront-backend/api/controllers"
	"github.com/mvaldesoto/storefront-backend/api/middleware"
	"github.com/mvaldesoto/storefront-backend/internal/catalog"
	"github.com/mvaldesoto/storefront-backend/internal/checkout"
	"github.com/mvaldesoto/storefront-backend/internal/shopping"
	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/mvaldesoto/storefront-backend/pkg/kvstore"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	KV              kvstore.Store
	Catalog         catalog.Provider
	Store           *shopping.Store
	CheckoutService checkout.Service
	Registry        *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.KV))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, deps.Logger))
			r.Get("/{productID}", controllers.ProductGet(deps.Catalog, deps.Logger))
		})
		r.Get("/categories", controllers.CategoriesList(deps.Catalog, deps.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Store, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.Store, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.Store, deps.Catalog, deps.Logger))
			r.Patch("/items/{productID}", controllers.CartUpdateItem(deps.Store, deps.Logger))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Store, deps.Logger))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.Store, deps.Logger))
			r.Post("/", controllers.WishlistAdd(deps.Store, deps.Catalog, deps.Logger))
			r.Delete("/{productID}", controllers.WishlistRemove(deps.Store, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Store, deps.Logger))
			r.Patch("/{orderID}/status", controllers.OrderUpdateStatus(deps.Store, deps.Logger))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutPlaceOrder(deps.CheckoutService, deps.Logger))
			r.Post("/{attemptID}/confirm", controllers.CheckoutConfirm(deps.CheckoutService, deps.Logger))
			r.Post("/{attemptID}/cancel", controllers.CheckoutCancel(deps.CheckoutService, deps.Logger))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(deps.Store, deps.Logger))
			r.Post("/", controllers.SessionSignIn(deps.Store, deps.Logger))
			r.Delete("/", controllers.SessionSignOut(deps.Store, deps.Logger))
		})

		r.Route("/state", func(r chi.Router) {
			r.Get("/", controllers.StateSnapshot(deps.Store, deps.Logger))
			r.Patch("/ui", controllers.StateUpdateUI(deps.Store, deps.Logger))
		})
	})

	return r
}
