package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mintdao/issuer/core"
	"github.com/oxtoacart/bpool"
)

var buffers = bpool.NewBufferPool(64)

func render(w http.ResponseWriter, status int, v any) {
	b := buffers.Get()
	defer buffers.Put(b)

	if err := json.NewEncoder(b).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = b.WriteTo(w)
}

func renderOK(w http.ResponseWriter) {
	render(w, http.StatusOK, map[string]any{"ok": true})
}

func renderErr(w http.ResponseWriter, err error) {
	render(w, statusFor(err), map[string]any{"error": err.Error()})
}

type badRequestError string

func errBadRequest(msg string) error {
	return badRequestError(msg)
}

func (e badRequestError) Error() string { return string(e) }

func statusFor(err error) int {
	var bad badRequestError

	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotInitialized), errors.Is(err, core.ErrNoSuchAccount):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, core.ErrInsufficientBalance),
		errors.Is(err, core.ErrSupplyOverflow),
		errors.Is(err, core.ErrAccountFrozen):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
