// Package httpapi is the local JSON facade page views talk to. Every handler
// that touches state runs inside the state container's execution context, so
// requests never interleave with each other or with a catalog swap.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	cartapp "github.com/dwikikusuma/storefront-state/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront-state/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront-state/internal/checkout/app"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	orderapp "github.com/dwikikusuma/storefront-state/internal/order/app"
	prefapp "github.com/dwikikusuma/storefront-state/internal/preference/app"
	sessionapp "github.com/dwikikusuma/storefront-state/internal/session/app"
	wishlistapp "github.com/dwikikusuma/storefront-state/internal/wishlist/app"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Executor interface {
	Do(fn func())
}

type Deps struct {
	Exec     Executor
	Catalog  *catalogapp.Service
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service
	Orders   *orderapp.Service
	Wishlist *wishlistapp.Service
	Theme    *prefapp.Service
	Session  *sessionapp.Service
	Inbox    *notify.Inbox
	Log      *slog.Logger
}

type Server struct {
	Deps
}

func NewServer(d Deps) *Server {
	if d.Exec == nil {
		panic("httpapi: executor cannot be nil")
	}
	d.Log = logger.OrDiscard(d.Log).With("component", "httpapi")
	return &Server{Deps: d}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))
	r.Use(middleware.Recoverer)

	// network I/O happens outside the execution context
	r.Post("/catalog/refresh", s.refreshCatalog)

	r.Group(func(r chi.Router) {
		r.Use(s.serialized)

		r.Get("/healthz", s.health)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Get("/featured", s.featuredProducts)
			r.Get("/search", s.searchProducts)
			r.Get("/{id}", s.getProduct)
			r.Get("/{id}/related", s.relatedProducts)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Delete("/", s.clearCart)
			r.Post("/items", s.addCartItem)
			r.Put("/items/{id}", s.updateCartItem)
			r.Delete("/items/{id}", s.removeCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Get("/export", s.exportOrders)
			r.Get("/{id}", s.getOrder)
			r.Get("/{id}/invoice", s.orderInvoice)
			r.Post("/{id}/status", s.transitionOrder)
			r.Post("/{id}/cancel", s.cancelOrder)
			r.Post("/{id}/reorder", s.reorder)
		})

		r.Get("/wishlist", s.getWishlist)
		r.Post("/wishlist/{id}", s.toggleWishlist)

		r.Get("/theme", s.getTheme)
		r.Post("/theme/toggle", s.toggleTheme)

		r.Get("/session", s.getSession)
		r.Post("/session", s.login)
		r.Delete("/session", s.logout)

		r.Get("/notifications", s.drainNotifications)
	})

	return r
}

func (s *Server) serialized(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Exec.Do(func() { next.ServeHTTP(w, r) })
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("elapsed", time.Since(started)),
			)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"catalogLoaded": s.Catalog.Loaded(),
	})
}

func (s *Server) drainNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Inbox.Drain())
}
