package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront-state/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront-state/internal/catalog/app"
	orderapp "github.com/dwikikusuma/storefront-state/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront-state/internal/order/domain"
	prefdomain "github.com/dwikikusuma/storefront-state/internal/preference/domain"
	sessiondomain "github.com/dwikikusuma/storefront-state/internal/session/domain"
	"github.com/dwikikusuma/storefront-state/internal/storage"
	wishlistapp "github.com/dwikikusuma/storefront-state/internal/wishlist/app"
)

var (
	errBadRequest = errors.New("malformed request")
	errNotFound   = errors.New("not found")
)

var badRequest = []error{
	errBadRequest,
	cartapp.ErrInvalidQuantity,
	orderdomain.ErrInvalidStatus,
	orderdomain.ErrInvalidTab,
	prefdomain.ErrInvalidTheme,
	sessiondomain.ErrInvalidSession,
	wishlistapp.ErrInvalidProductID,
}

// httpStatusFromError maps service errors onto a status and a stable code.
func httpStatusFromError(err error) (int, string, string) {
	msg := err.Error()
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, "INVALID_ARGUMENT", msg
		}
	}

	switch {
	case errors.Is(err, errNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrOrderNotFound):
		return http.StatusNotFound, "NOT_FOUND", msg
	case errors.Is(err, orderdomain.ErrNotCancellable),
		errors.Is(err, orderapp.ErrEmptyCart):
		return http.StatusConflict, "FAILED_PRECONDITION", msg
	case errors.Is(err, storage.ErrPersist),
		errors.Is(err, catalogapp.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "UNAVAILABLE", msg
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status, code, msg := httpStatusFromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &errorBody{Code: code, Message: msg}})
}

// writeResult answers with data on success. A persistence failure still
// carries data, because the change was applied in memory.
func writeResult(w http.ResponseWriter, status int, data any, err error) {
	switch {
	case err == nil:
		writeJSON(w, status, data)
	case errors.Is(err, storage.ErrPersist):
		s, code, msg := httpStatusFromError(err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s)
		_ = json.NewEncoder(w).Encode(envelope{Data: data, Error: &errorBody{Code: code, Message: msg}})
	default:
		writeError(w, err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func isPersist(err error) bool {
	return errors.Is(err, storage.ErrPersist)
}
