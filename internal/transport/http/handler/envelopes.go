package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-otp-nosql/internal/application/issuance"
	"github.com/go-otp-nosql/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// IssueEnvelope wraps a freshly issued code.
type IssueEnvelope struct {
	Message string           `json:"message"`
	Issued  *issuance.Issued `json:"issued,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCode):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoValidCode), errors.Is(err, domain.ErrExpiredCode):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

func httpError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeError(w, status, msg)
}

// writeResult writes a verification Result. Successful results are always 200, including
// sends whose provider call failed.
func writeResult(w http.ResponseWriter, res domain.Result) {
	status := http.StatusOK
	if !res.Success {
		status = statusFor(res.Err)
	}
	writeJSON(w, status, res)
}
