package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-nosql/internal/application/issuance"
	"github.com/go-otp-nosql/internal/application/verification"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/go-otp-nosql/internal/pkg/validate"
	"github.com/go-otp-nosql/internal/transport/http/middleware"
)

// OTPHandler exposes the verification and issuance flows.
type OTPHandler struct {
	verify verification.Service
	issue  issuance.Service
}

func NewOTPHandler(verify verification.Service, issue issuance.Service) *OTPHandler {
	return &OTPHandler{verify: verify, issue: issue}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req verification.SendRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.verify.SendOTP(r.Context(), req))
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verification.VerifyRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.verify.VerifyOTP(r.Context(), req))
}

func (h *OTPHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req verification.CancelRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, h.verify.CancelVerification(r.Context(), req))
}

// Issue mints a code for the caller. Role and user id come from the token, never the body.
func (h *OTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil || role == "" {
		writeError(w, http.StatusForbidden, "token role cannot request codes")
		return
	}
	var req issuance.IssueRequest
	if !decode(w, r, &req) {
		return
	}
	ch, err := domain.ParseChannel(req.Channel)
	if err != nil {
		httpError(w, err)
		return
	}
	issued, err := h.issue.Issue(r.Context(), role, claims.UserID, ch)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IssueEnvelope{Message: "verification code generated", Issued: issued})
}

// decode reads and validates a JSON body, writing 400 or 422 on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}
