package handlers

import (
	"encoding/json"
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(s *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: s}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SaveEmailSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.Service.SaveSettings(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

// SendTest fires a synthetic notification through the saved configuration
// so the operator can verify credentials before a real receive needs them.
func (h *SettingsHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SendTest(r.Context()); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
