package router

import (
	"net/http"

	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures optional parts of the router.
type Options struct {
	// AllowedOrigins feeds the CORS middleware. Empty means "*".
	AllowedOrigins []string
	// UI is mounted under /ui when set.
	UI http.Handler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(products *handler.ProductsController, opts Options, logger zerolog.Logger) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Applied in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(origins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	onError := handler.NewErrorHandler(logger)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", handler.Adapt(products.GetAll, onError))
		r.Post("/", handler.Adapt(products.Create, onError))
		r.Get("/{id}", handler.Adapt(products.GetByID, onError))
		r.Patch("/{id}", handler.Adapt(products.Update, onError))
		r.Delete("/{id}", handler.Adapt(products.Delete, onError))
	})

	if opts.UI != nil {
		r.Mount("/ui", opts.UI)
	}

	return r
}
