package httpapi

import (
	"fmt"
	"net/http"
	"time"

	orderdomain "github.com/dwikikusuma/storefront-state/internal/order/domain"
	"github.com/go-chi/chi/v5"
)

type createOrderRequest struct {
	CustomerInfo  *orderdomain.CustomerInfo `json:"customerInfo"`
	PaymentMethod string                    `json:"paymentMethod"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type orderChange struct {
	Changed bool              `json:"changed"`
	Order   orderdomain.Order `json:"order"`
}

// listOrders serves ?tab= and an optional ?from=&to= RFC 3339 window.
func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab, err := orderdomain.ParseTab(q.Get("tab"))
	if err != nil {
		writeError(w, err)
		return
	}

	orders := s.Orders.Filter(tab)
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		start, end, err := parseWindow(from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		orders = orders.Between(start, end)
	}
	writeJSON(w, http.StatusOK, orders)
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	start, end := time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if from != "" {
		if start, err = time.Parse(time.RFC3339, from); err != nil {
			return start, end, fmt.Errorf("%w: from: %v", errBadRequest, err)
		}
	}
	if to != "" {
		if end, err = time.Parse(time.RFC3339, to); err != nil {
			return start, end, fmt.Errorf("%w: to: %v", errBadRequest, err)
		}
	}
	return start, end, nil
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	order, err := s.Orders.Create(r.Context(), req.CustomerInfo, req.PaymentMethod)
	if err != nil && order.ID == "" {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/orders/"+order.ID)
	writeResult(w, http.StatusCreated, order, err)
}

func (s *Server) exportOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="freshmart-orders.csv"`)
	if err := s.Orders.ExportCSV(w); err != nil {
		s.Log.Error("order export failed", "err", err)
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.Orders.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) orderInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Orders.Get(id); !ok {
		writeError(w, errNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="FreshMart-Invoice-%s.txt"`, id))
	if err := s.Orders.Invoice(w, id); err != nil {
		s.Log.Error("invoice render failed", "order_id", id, "err", err)
	}
}

func (s *Server) transitionOrder(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	status, err := orderdomain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := s.Orders.Get(id); !ok {
		writeError(w, errNotFound)
		return
	}
	changed, err := s.Orders.Transition(r.Context(), id, status)
	s.respondOrder(w, id, changed, err)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Orders.Get(id); !ok {
		writeError(w, errNotFound)
		return
	}
	changed, err := s.Orders.Cancel(r.Context(), id)
	s.respondOrder(w, id, changed, err)
}

func (s *Server) respondOrder(w http.ResponseWriter, id string, changed bool, err error) {
	if err != nil && !isPersist(err) {
		writeError(w, err)
		return
	}
	order, _ := s.Orders.Get(id)
	writeResult(w, http.StatusOK, orderChange{Changed: changed || err != nil, Order: order}, err)
}

func (s *Server) reorder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Orders.Get(id); !ok {
		writeError(w, errNotFound)
		return
	}
	added, err := s.Orders.Reorder(r.Context(), id)
	if err != nil && !isPersist(err) {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{"added": added, "cart": s.Cart.Items()}, err)
}
