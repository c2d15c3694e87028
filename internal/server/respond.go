package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oncokb/kbtip/internal/api"
)

var (
	errBadRequest  = errors.New("bad request")
	errUnspecified = errors.New("request is not specified enough to send upstream")
	errNotFound    = errors.New("not found")
)

// codedError carries the HTTP status for an error.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withStatus(err error, code int) error {
	return &codedError{err: err, code: code}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// restHandler returns a value to encode as JSON, or an error.
type restHandler func(r *http.Request) (any, error)

func wrap(h restHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if res == nil {
			res = struct{}{}
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorBody{Error: err.Error()})
}

// errorStatus maps an error to the status returned to the caller. Upstream
// client errors pass through; upstream outages become gateway errors.
func errorStatus(err error) int {
	var cerr *codedError
	if errors.As(err, &cerr) {
		return cerr.code
	}

	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, api.ErrNetworkError), errors.Is(err, api.ErrInvalidResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 500 {
			return http.StatusBadGateway
		}
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
