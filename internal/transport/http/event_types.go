package http

import (
	"context"
	"net/http"

	"github.com/cosfat/kzone/internal/domain"
)

type EventTypeService interface {
	List(ctx context.Context) ([]domain.EventType, error)
}

type eventTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func HandleEventTypes(svc EventTypeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]eventTypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, eventTypeResponse{ID: t.ID, Name: t.Name})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
