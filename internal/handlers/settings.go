package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/middleware"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/response"
)

type settingsService interface {
	Get(ctx context.Context, uid string) (models.Settings, error)
	Update(ctx context.Context, uid, currency string) (models.Settings, error)
}

type settingsHandlers struct {
	ResponseHandler response.ResponseHandler
	SettingsSvc     settingsService
}

func NewSettingsHandlers(deps *Deps) *settingsHandlers {
	return &settingsHandlers{
		ResponseHandler: deps.ResponseHandler,
		SettingsSvc:     deps.SettingsSvc,
	}
}

func (h *settingsHandlers) SettingsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSettings)
	r.Put("/", h.UpdateSettings)
	return r
}

func (h *settingsHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	uid, err := middleware.ResolveUID(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	settings, err := h.SettingsSvc.Get(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, settings)
}

func (h *settingsHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid, err := middleware.ResolveUID(r.Context(), req.UID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	settings, err := h.SettingsSvc.Update(r.Context(), uid, req.Currency)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.SettingsUpdateResponse{
		Success:  true,
		Settings: settings,
	})
}
