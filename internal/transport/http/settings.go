package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cosfat/kzone/internal/app"
	"github.com/cosfat/kzone/internal/domain"
)

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, in app.UpdateSettingsInput) (domain.Settings, error)
}

type settingsResponse struct {
	HomepageSortOrder string `json:"homepageSortOrder"`
	HideOldEvents     bool   `json:"hideOldEvents"`
}

type updateSettingsRequest struct {
	HomepageSortOrder string `json:"homepageSortOrder"`
	HideOldEvents     bool   `json:"hideOldEvents"`
}

func HandleGetSettings(svc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Get(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			HomepageSortOrder: string(settings.HomepageSortOrder),
			HideOldEvents:     settings.HideOldEvents,
		})
	}
}

func HandleUpdateSettings(svc SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		settings, err := svc.Update(r.Context(), app.UpdateSettingsInput{
			HomepageSortOrder: req.HomepageSortOrder,
			HideOldEvents:     req.HideOldEvents,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			HomepageSortOrder: string(settings.HomepageSortOrder),
			HideOldEvents:     settings.HideOldEvents,
		})
	}
}
