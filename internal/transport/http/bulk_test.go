package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosfat/kzone/internal/app"
	"github.com/cosfat/kzone/internal/domain"
)

func TestHandleBulkDelete_PartialFailure(t *testing.T) {
	t.Parallel()

	svc := &stubEventService{
		bulk: app.BulkResult{
			Succeeded: []string{"a"},
			Failed:    map[string]error{"b": domain.ErrNotFound},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/events/bulk/delete", bytes.NewBufferString(`{"ids":["a","b"]}`))
	rec := httptest.NewRecorder()
	HandleBulkDelete(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp bulkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Succeeded) != 1 || resp.Succeeded[0] != "a" {
		t.Fatalf("expected succeeded [a], got %v", resp.Succeeded)
	}
	if resp.Failed["b"].Code != codeNotFound {
		t.Fatalf("expected failed[b] code not_found, got %+v", resp.Failed["b"])
	}
}

func TestHandleBulkDelete_EmptySet(t *testing.T) {
	t.Parallel()

	svc := &stubEventService{err: domain.ErrEmptyIDSet}

	req := httptest.NewRequest(http.MethodPost, "/admin/events/bulk/delete", bytes.NewBufferString(`{"ids":[]}`))
	rec := httptest.NewRecorder()
	HandleBulkDelete(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleBulkVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"ids":["a"],"isVisible":false}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing isVisible",
			body:           `{"ids":["a"]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{"ids":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubEventService{bulk: app.BulkResult{Succeeded: []string{"a"}}}
			req := httptest.NewRequest(http.MethodPost, "/admin/events/bulk/visibility", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleBulkVisibility(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}
