package httpinterface

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

const requestIDHeader = "X-Request-Id"

var errBadRequest = errors.New("bad request")

func newRequestID() string { return "req_" + uuid.NewString() }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %s", errBadRequest, err)
	}
	return nil
}

// writeError classifies err by kind and writes the matching status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	writeJSON(w, status, api.ErrorBody{
		Error:     api.ErrorDetail{Code: code, Message: err.Error()},
		RequestID: requestIDFromContext(r.Context()),
	})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, api.CodeBadRequest
	case errors.Is(err, errFaucetDisabled):
		return http.StatusForbidden, api.CodeFaucetDisabled
	case errors.Is(err, domain.ErrPreconditionFailed):
		return http.StatusBadRequest, api.CodePreconditionFailed
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, api.CodeNotFound
	case errors.Is(err, domain.ErrCollision):
		return http.StatusConflict, api.CodeCollision
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusForbidden, api.CodeInvariantViolation
	default:
		return http.StatusInternalServerError, api.CodeInternal
	}
}

func parseAddress(name, value string) (address.Address, error) {
	if value == "" {
		return address.Address{}, fmt.Errorf("%w: missing %s", errBadRequest, name)
	}
	addr, err := address.ParseAddress(value)
	if err != nil {
		return address.Address{}, fmt.Errorf("%w: invalid %s: %s", errBadRequest, name, err)
	}
	return addr, nil
}

func urlAddress(r *http.Request, name string) (address.Address, error) {
	return parseAddress(name, chi.URLParam(r, name))
}

// queryAddress returns nil if the query param is not set.
func queryAddress(r *http.Request, name string) (*address.Address, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	addr, err := parseAddress(name, value)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}
