// Package storefront wires the HTTP surface: the catalog and order API, and
// static page and asset serving for everything else.
package storefront

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parthg2112/ecommerce-wp-proj/internal/telemetry"
)

type CatalogHandler interface {
	HandleList(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
}

type RouterConfig struct {
	Catalog CatalogHandler
	Orders  OrderHandler
	Static  http.Handler
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		withCORS,
		rejectTraversal,
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(cfg.Logger),
		middleware.Recoverer,
		telemetry.RouteTagger,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Get("/api/products", cfg.Catalog.HandleList)
	r.Post("/api/orders", cfg.Orders.HandleCreate)
	r.Get("/api/orders/{id}", cfg.Orders.HandleGet)

	r.NotFound(cfg.Static.ServeHTTP)
	r.MethodNotAllowed(cfg.Static.ServeHTTP)

	return r
}

// withCORS sets permissive CORS headers on every response and answers
// preflight requests itself.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		h.Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rejectTraversal refuses any path containing "..", decoded or not, before
// routing, so no filesystem lookup ever sees it.
func rejectTraversal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "..") || strings.Contains(r.URL.RawPath, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
