package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cosfat/kzone/internal/domain"
)

// VerifyGate is the slice of the authorization gate the token endpoints need.
type VerifyGate interface {
	Verify(ctx context.Context, token, clientKey string) (domain.Identity, error)
	IsAdmin(identity domain.Identity) bool
}

type verifyRequest struct {
	IDToken string `json:"idToken"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	UID   string `json:"uid"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// HandleVerifyToken verifies a presented credential and reports the identity
// plus its admin standing.
func HandleVerifyToken(gate VerifyGate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		// An empty token still goes through the gate so the attempt is
		// charged against the caller's budget.
		identity, err := gate.Verify(r.Context(), req.IDToken, clientKey(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, verifyResponse{
			Valid: true,
			UID:   identity.UID,
			Email: identity.Email,
			Admin: gate.IsAdmin(identity),
		})
	}
}

type adminCheckResponse struct {
	Admin bool `json:"admin"`
}

// HandleCheckAdmin answers the admin question for a token: 403 when the
// credential is valid but not an admin.
func HandleCheckAdmin(gate VerifyGate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		identity, err := gate.Verify(r.Context(), req.IDToken, clientKey(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !gate.IsAdmin(identity) {
			writeError(w, http.StatusForbidden, codeForbidden, "admin privilege required")
			return
		}
		writeJSON(w, http.StatusOK, adminCheckResponse{Admin: true})
	}
}
