package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartView is the cart page model: the items plus freshly computed totals.
func (s *Server) cartView(r *http.Request) (any, error) {
	quote, err := s.Checkout.Quote(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"items": s.Cart.Items(),
		"quote": quote,
	}, nil
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := s.cartView(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	added, err := s.Cart.Add(r.Context(), req.ProductID, qty)
	if err == nil && !added {
		writeError(w, errNotFound)
		return
	}
	s.respondCart(w, r, http.StatusCreated, err)
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	changed, err := s.Cart.Update(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err == nil && !changed {
		writeError(w, errNotFound)
		return
	}
	s.respondCart(w, r, http.StatusOK, err)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	removed, err := s.Cart.Remove(r.Context(), chi.URLParam(r, "id"))
	if err == nil && !removed {
		writeError(w, errNotFound)
		return
	}
	s.respondCart(w, r, http.StatusOK, err)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.respondCart(w, r, http.StatusOK, s.Cart.Clear(r.Context()))
}

func (s *Server) respondCart(w http.ResponseWriter, r *http.Request, status int, opErr error) {
	if opErr != nil && !isPersist(opErr) {
		writeError(w, opErr)
		return
	}
	view, err := s.cartView(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, status, view, opErr)
}
