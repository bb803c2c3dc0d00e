package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"stock-backend/internal/middleware"
	"stock-backend/internal/models"
	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type TransferHandler struct {
	Service *services.TransferService
	Reports *services.ReportService
}

func NewTransferHandler(s *services.TransferService, reports *services.ReportService) *TransferHandler {
	return &TransferHandler{Service: s, Reports: reports}
}

func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.ErrorMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	transfer, err := h.Service.CreateTransfer(r.Context(), &req, user.ID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, transfer)
}

func (h *TransferHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transfer, err := h.Service.GetTransfer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, transfer)
}

func (h *TransferHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.Service.ListTransfers(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, transfers)
}

// DispatchTransfer marks a pending transfer in transit. Replays and
// concurrent dispatches come back as 409.
func (h *TransferHandler) DispatchTransfer(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.ErrorMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	transfer, err := h.Service.DispatchTransfer(r.Context(), mux.Vars(r)["id"], user.ID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, transfer)
}

// ReceiveTransfer closes out an in-transit transfer. An empty body is
// valid and means nothing was short or damaged.
func (h *TransferHandler) ReceiveTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.ReceiveTransferRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.ErrorMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	transfer, err := h.Service.ReceiveTransfer(r.Context(), mux.Vars(r)["id"], user.ID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, transfer)
}

// Manifest streams the delivery manifest PDF for a transfer.
func (h *TransferHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	pdf, err := h.Reports.GenerateManifestPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="manifest_%s.pdf"`, id))
	w.Write(pdf)
}
