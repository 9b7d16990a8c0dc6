package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog.Products())
}

func (s *Server) featuredProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog.Featured(limitParam(r)))
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog.Suggest(r.URL.Query().Get("q"), limitParam(r)))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.Catalog.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product":         p,
		"discountPercent": p.DiscountPercent(),
		"inWishlist":      s.Wishlist.Contains(p.ID),
	})
}

func (s *Server) relatedProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Catalog.Lookup(id); !ok {
		writeError(w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.Catalog.Related(id, limitParam(r)))
}

func (s *Server) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.Load(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	var count int
	s.Exec.Do(func() { count = len(s.Catalog.Products()) })
	writeJSON(w, http.StatusOK, map[string]int{"products": count})
}
