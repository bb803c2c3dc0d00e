package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stock-backend/internal/services"
	"stock-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) TransfersCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.TransfersCSV(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("transfers_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
