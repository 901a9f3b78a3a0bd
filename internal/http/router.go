package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/snackshop/storefront/internal/cart"
	"github.com/snackshop/storefront/internal/catalog"
	"github.com/snackshop/storefront/internal/service"
)

// NewRouter wires the presentation bridge: catalog listing plus the cart
// intent endpoints, all session-scoped via cookie.
func NewRouter(svc *service.CartService, cat *catalog.Catalog, store cart.Store, requestTimeout time.Duration) *chi.Mux {
	cartHandler := NewCartHandler(svc)
	catalogHandler := NewCatalogHandler(cat)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Use(SessionMiddleware(store))
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{product_id}/increment", cartHandler.IncrementItem)
			r.Post("/items/{product_id}/decrement", cartHandler.DecrementItem)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
	})

	return r
}
