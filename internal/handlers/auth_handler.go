package handlers

import (
	"encoding/json"
	"net/http"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Login authenticates a user and returns a token plus the user record.
// Credential failures come back as 401 regardless of which check failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}
