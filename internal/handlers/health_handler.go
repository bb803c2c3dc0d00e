package handlers

import (
	"net/http"

	"stock-backend/internal/health"
	"stock-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(c *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: c}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.Checker.Ready() {
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
