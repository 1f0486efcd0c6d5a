package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cosfat/kzone/internal/app"
	"github.com/cosfat/kzone/internal/domain"
)

// EventService is the slice of the event service the transport needs.
type EventService interface {
	Create(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	Update(ctx context.Context, id string, in app.UpdateEventInput) (domain.Event, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Event, error)
	DisplayList(ctx context.Context, audience domain.Audience) ([]app.DisplayEvent, error)
	BulkSetVisibility(ctx context.Context, ids []string, visible bool) (app.BulkResult, error)
	BulkDelete(ctx context.Context, ids []string) (app.BulkResult, error)
}

type eventResponse struct {
	ID            string `json:"id"`
	EventType     int    `json:"eventType"`
	EventTypeName string `json:"eventTypeName"`
	Venue         string `json:"venue"`
	City          string `json:"city"`
	Date          string `json:"date"`
	TicketStatus  string `json:"ticketStatus"`
	TicketLink    string `json:"ticketLink,omitempty"`
	IsVisible     bool   `json:"isVisible"`
}

func toEventResponse(ev app.DisplayEvent) eventResponse {
	return eventResponse{
		ID:            ev.ID,
		EventType:     ev.EventType,
		EventTypeName: ev.EventTypeName,
		Venue:         ev.Venue,
		City:          ev.City,
		Date:          ev.Date,
		TicketStatus:  string(ev.TicketStatus),
		TicketLink:    ev.TicketLink,
		IsVisible:     ev.Visible,
	}
}

func toEventResponses(events []app.DisplayEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return out
}

// HandlePublicEvents serves the unauthenticated homepage listing. A failed
// read is an error status, never an empty list a visitor could mistake for
// "no events".
func HandlePublicEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.DisplayList(r.Context(), domain.AudiencePublic)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(events))
	}
}

// HandleAdminListEvents serves the full event set, hidden events included.
func HandleAdminListEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.DisplayList(r.Context(), domain.AudienceAdmin)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(events))
	}
}

type createEventRequest struct {
	EventType    int    `json:"eventType"`
	Venue        string `json:"venue"`
	City         string `json:"city"`
	Date         string `json:"date"`
	TicketStatus string `json:"ticketStatus"`
	TicketLink   string `json:"ticketLink"`
	IsVisible    *bool  `json:"isVisible"`
}

func HandleCreateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.Create(r.Context(), app.CreateEventInput{
			EventType:    req.EventType,
			Venue:        req.Venue,
			City:         req.City,
			Date:         req.Date,
			TicketStatus: req.TicketStatus,
			TicketLink:   req.TicketLink,
			Visible:      req.IsVisible,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, storedEventResponse(event))
	}
}

type updateEventRequest struct {
	EventType    *int    `json:"eventType"`
	Venue        *string `json:"venue"`
	City         *string `json:"city"`
	Date         *string `json:"date"`
	TicketStatus *string `json:"ticketStatus"`
	TicketLink   *string `json:"ticketLink"`
	IsVisible    *bool   `json:"isVisible"`
}

func HandleUpdateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.Update(r.Context(), chi.URLParam(r, "id"), app.UpdateEventInput{
			EventType:    req.EventType,
			Venue:        req.Venue,
			City:         req.City,
			Date:         req.Date,
			TicketStatus: req.TicketStatus,
			TicketLink:   req.TicketLink,
			Visible:      req.IsVisible,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, storedEventResponse(event))
	}
}

func HandleGetEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, storedEventResponse(event))
	}
}

func HandleDeleteEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// storedEventResponse renders a bare stored event; write endpoints return the
// record without the resolved type label, the caller re-fetches the list.
func storedEventResponse(ev domain.Event) eventResponse {
	return eventResponse{
		ID:           ev.ID,
		EventType:    ev.EventType,
		Venue:        ev.Venue,
		City:         ev.City,
		Date:         ev.Date,
		TicketStatus: string(ev.TicketStatus),
		TicketLink:   ev.TicketLink,
		IsVisible:    ev.Visible,
	}
}
