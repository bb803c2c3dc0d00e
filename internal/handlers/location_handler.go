package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type LocationHandler struct {
	Service *services.LocationService
}

func NewLocationHandler(s *services.LocationService) *LocationHandler {
	return &LocationHandler{Service: s}
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	location, err := h.Service.CreateLocation(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, location)
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.Service.GetLocation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, location)
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	location, err := h.Service.UpdateLocation(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteLocation(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
