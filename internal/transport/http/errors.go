package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cosfat/kzone/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidID           = "invalid_id"
	codeVenueRequired       = "venue_required"
	codeCityRequired        = "city_required"
	codeDateRequired        = "date_required"
	codeInvalidDate         = "invalid_date"
	codeInvalidTicketStatus = "invalid_ticket_status"
	codeInvalidSortOrder    = "invalid_sort_order"
	codeEmptyIDSet          = "empty_id_set"
	codeInvalidArgument     = "invalid_argument"
	codeUnauthenticated     = "unauthenticated"
	codeForbidden           = "forbidden"
	codeTooManyAttempts     = "too_many_attempts"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// statusCode maps a service error onto the wire taxonomy. Unknown errors are
// reported as internal without leaking their message.
func statusCode(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, codeNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error()
	case errors.Is(err, domain.ErrVenueRequired):
		return http.StatusBadRequest, codeVenueRequired, domain.ErrVenueRequired.Error()
	case errors.Is(err, domain.ErrCityRequired):
		return http.StatusBadRequest, codeCityRequired, domain.ErrCityRequired.Error()
	case errors.Is(err, domain.ErrDateRequired):
		return http.StatusBadRequest, codeDateRequired, domain.ErrDateRequired.Error()
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, codeInvalidDate, domain.ErrInvalidDate.Error()
	case errors.Is(err, domain.ErrInvalidTicketStatus):
		return http.StatusBadRequest, codeInvalidTicketStatus, domain.ErrInvalidTicketStatus.Error()
	case errors.Is(err, domain.ErrInvalidSortOrder):
		return http.StatusBadRequest, codeInvalidSortOrder, domain.ErrInvalidSortOrder.Error()
	case errors.Is(err, domain.ErrEmptyIDSet):
		return http.StatusBadRequest, codeEmptyIDSet, domain.ErrEmptyIDSet.Error()
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, codeInvalidArgument, domain.ErrInvalidArgument.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, codeUnauthenticated, "invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, codeForbidden, "admin privilege required"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, codeTooManyAttempts, "too many attempts, try again later"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, codeUpstreamUnavailable, "upstream unavailable"
	}
	return http.StatusInternalServerError, codeInternalError, "internal error"
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, code, msg := statusCode(err)
	writeError(w, status, code, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
