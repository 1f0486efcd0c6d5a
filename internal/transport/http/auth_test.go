package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cosfat/kzone/internal/domain"
)

type stubGate struct {
	identity    domain.Identity
	verifyErr   error
	adminErr    error
	admin       bool
	lastClient  string
	lastToken   string
	verifyCalls int
}

func (s *stubGate) Verify(_ context.Context, token, clientKey string) (domain.Identity, error) {
	s.verifyCalls++
	s.lastToken = token
	s.lastClient = clientKey
	return s.identity, s.verifyErr
}

func (s *stubGate) IsAdmin(_ domain.Identity) bool {
	return s.admin
}

func (s *stubGate) CheckAdmin(_ context.Context, _, clientKey string) (bool, error) {
	s.lastClient = clientKey
	return s.admin, s.adminErr
}

func TestHandleVerifyToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		gate           *stubGate
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "valid admin token",
			body:           `{"idToken":"tok"}`,
			gate:           &stubGate{identity: domain.Identity{UID: "u1", Email: "admin@kzone.com"}, admin: true},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"admin":true`,
		},
		{
			name:           "valid non-admin token",
			body:           `{"idToken":"tok"}`,
			gate:           &stubGate{identity: domain.Identity{UID: "u2", Email: "fan@example.com"}},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"admin":false`,
		},
		{
			name:           "missing token",
			body:           `{}`,
			gate:           &stubGate{verifyErr: domain.ErrUnauthenticated},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			body:           `{"idToken":"bad"}`,
			gate:           &stubGate{verifyErr: domain.ErrUnauthenticated},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "over the limit",
			body:           `{"idToken":"bad"}`,
			gate:           &stubGate{verifyErr: domain.ErrTooManyAttempts},
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleVerifyToken(tt.gate).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleVerifyToken_EmptyTokenChargesBudget(t *testing.T) {
	t.Parallel()

	gate := &stubGate{verifyErr: domain.ErrUnauthenticated}
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBufferString(`{"idToken":""}`))
	rec := httptest.NewRecorder()

	HandleVerifyToken(gate).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	// The gate must see the attempt so the limiter can count it.
	if gate.verifyCalls != 1 {
		t.Fatalf("expected the gate to be consulted once, got %d calls", gate.verifyCalls)
	}
	if gate.lastToken != "" {
		t.Fatalf("expected the empty token to be passed through, got %q", gate.lastToken)
	}
}

func TestHandleVerifyToken_UsesForwardedAddress(t *testing.T) {
	t.Parallel()

	gate := &stubGate{identity: domain.Identity{UID: "u1"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBufferString(`{"idToken":"tok"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	HandleVerifyToken(gate).ServeHTTP(rec, req)

	if gate.lastClient != "203.0.113.7" {
		t.Fatalf("expected first forwarded hop as client key, got %q", gate.lastClient)
	}
}

func TestHandleCheckAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		gate           *stubGate
		expectedStatus int
	}{
		{
			name:           "admin",
			gate:           &stubGate{identity: domain.Identity{UID: "u1", Email: "admin@kzone.com"}, admin: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid but not admin",
			gate:           &stubGate{identity: domain.Identity{UID: "u2", Email: "fan@example.com"}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid token",
			gate:           &stubGate{verifyErr: domain.ErrUnauthenticated},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/auth/admin", bytes.NewBufferString(`{"idToken":"tok"}`))
			rec := httptest.NewRecorder()

			HandleCheckAdmin(tt.gate).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		gate           *stubGate
		expectedStatus int
	}{
		{name: "admin passes", gate: &stubGate{admin: true}, expectedStatus: http.StatusOK},
		{name: "non-admin forbidden", gate: &stubGate{}, expectedStatus: http.StatusForbidden},
		{name: "bad token", gate: &stubGate{adminErr: domain.ErrUnauthenticated}, expectedStatus: http.StatusUnauthorized},
		{name: "rate limited", gate: &stubGate{adminErr: domain.ErrTooManyAttempts}, expectedStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()

			RequireAdmin(tt.gate)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}
