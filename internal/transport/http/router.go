package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Gate combines the two views the transport has on the authorization gate.
type Gate interface {
	AdminGate
	VerifyGate
}

// NewRouter mounts the public, auth, and admin surfaces. Only /admin requires
// a credential; the homepage listing stays open.
func NewRouter(events EventService, types EventTypeService, settings SettingsService, gate Gate) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)
	r.Get("/events", HandlePublicEvents(events))
	r.Get("/event-types", HandleEventTypes(types))

	r.Post("/auth/verify", HandleVerifyToken(gate))
	r.Post("/auth/admin", HandleCheckAdmin(gate))

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(RequireAdmin(gate))
		ar.Get("/events", HandleAdminListEvents(events))
		ar.Post("/events", HandleCreateEvent(events))
		ar.Get("/events/{id}", HandleGetEvent(events))
		ar.Put("/events/{id}", HandleUpdateEvent(events))
		ar.Delete("/events/{id}", HandleDeleteEvent(events))
		ar.Post("/events/bulk/visibility", HandleBulkVisibility(events))
		ar.Post("/events/bulk/delete", HandleBulkDelete(events))
		ar.Get("/settings", HandleGetSettings(settings))
		ar.Put("/settings", HandleUpdateSettings(settings))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
