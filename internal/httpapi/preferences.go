package httpapi

import (
	"net/http"

	sessiondomain "github.com/dwikikusuma/storefront-state/internal/session/domain"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"productIds": s.Wishlist.Items()})
}

func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, err := s.Wishlist.Toggle(r.Context(), id)
	if err != nil && !isPersist(err) {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{
		"productId":  id,
		"inWishlist": in,
		"productIds": s.Wishlist.Items(),
	}, err)
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"theme": s.Theme.Theme()})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	next, err := s.Theme.Toggle(r.Context())
	writeResult(w, http.StatusOK, map[string]any{"theme": next}, err)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"session": s.Session.Current()})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req sessiondomain.UserSession
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := s.Session.Login(r.Context(), req)
	if err != nil && !isPersist(err) {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{"session": s.Session.Current()}, err)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	err := s.Session.Logout(r.Context())
	writeResult(w, http.StatusOK, map[string]any{"session": nil}, err)
}
