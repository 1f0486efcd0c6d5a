package http

import (
	"encoding/json"
	"net/http"

	"github.com/cosfat/kzone/internal/app"
)

type bulkVisibilityRequest struct {
	IDs       []string `json:"ids"`
	IsVisible *bool    `json:"isVisible"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type bulkResponse struct {
	Succeeded []string                 `json:"succeeded"`
	Failed    map[string]errorResponse `json:"failed"`
}

// toBulkResponse flattens the per-id accounting onto the wire taxonomy.
func toBulkResponse(result app.BulkResult) bulkResponse {
	resp := bulkResponse{
		Succeeded: result.Succeeded,
		Failed:    make(map[string]errorResponse, len(result.Failed)),
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []string{}
	}
	for id, err := range result.Failed {
		_, code, msg := statusCode(err)
		resp.Failed[id] = errorResponse{Error: msg, Code: code}
	}
	return resp
}

func HandleBulkVisibility(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkVisibilityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.IsVisible == nil {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, "isVisible is required")
			return
		}

		result, err := svc.BulkSetVisibility(r.Context(), req.IDs, *req.IsVisible)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBulkResponse(result))
	}
}

func HandleBulkDelete(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkDeleteRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.BulkDelete(r.Context(), req.IDs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBulkResponse(result))
	}
}
