package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/rshade/netzero/internal/solar"
)

// Error codes in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeInvalidInput     = "invalid_input"
	codeInvalidUnit      = "invalid_unit"
	codeUnknownPreset    = "unknown_preset"
	codeDivisionGuard    = "division_guard"
	codeRateLimited      = "rate_limited"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps calculation errors to HTTP statuses: bad input is the
// caller's fault (400), a guarded division means valid numbers that cannot be
// evaluated (422).
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, solar.ErrDivisionGuard):
		return http.StatusUnprocessableEntity, codeDivisionGuard
	case errors.Is(err, solar.ErrInvalidUnit):
		return http.StatusBadRequest, codeInvalidUnit
	case errors.Is(err, solar.ErrUnknownPreset):
		return http.StatusBadRequest, codeUnknownPreset
	case errors.Is(err, solar.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeCalcError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := solar.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
