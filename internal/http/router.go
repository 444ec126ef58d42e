package http

import (
	"net/http"
	"time"

	"github.com/fjod/maison/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Catalog        Catalog
	Sessions       Sessions
	Logger         *zap.Logger
	RequestTimeout time.Duration
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	productHandler := NewProductHandler(cfg.Catalog, cfg.RequestTimeout)
	cartHandler := NewCartHandler(cfg.Catalog, cfg.RequestTimeout)
	pageHandler := NewPageHandler(cfg.Catalog, cfg.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(AccessLog(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Sessions))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{id}", cartHandler.RemoveItem)
				r.Post("/checkout", cartHandler.Checkout)
			})

			r.Route("/page", func(r chi.Router) {
				r.Get("/", pageHandler.Get)
				r.Post("/", pageHandler.Select)
				r.Post("/product", pageHandler.SelectProduct)
				r.Post("/back", pageHandler.Back)
			})
		})
	})

	opts := []otelhttp.Option{otelhttp.WithPropagators(telemetry.Propagator())}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}
	return otelhttp.NewHandler(r, "storefront", opts...)
}
