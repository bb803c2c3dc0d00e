package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"stock-backend/internal/models"
)

// TransferSummary aggregates lifecycle counts across all transfers.
type TransferSummary struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	InTransit     int `json:"inTransit"`
	Received      int `json:"received"`
	TotalQuantity int `json:"totalQuantity"`
	WithShortages int `json:"withShortages"`
	WithDamages   int `json:"withDamages"`
}

// ReportService generates summaries, CSV exports and PDF manifests over
// the transfer store.
type ReportService struct {
	transfers TransferStore
	locations LocationStore
}

func NewReportService(transfers TransferStore, locations LocationStore) *ReportService {
	return &ReportService{
		transfers: transfers,
		locations: locations,
	}
}

// Summary computes the dashboard aggregates.
func (s *ReportService) Summary(ctx context.Context) (*TransferSummary, error) {
	transfers, err := s.transfers.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &TransferSummary{Total: len(transfers)}
	for _, t := range transfers {
		switch t.Status {
		case models.TransferPending:
			summary.Pending++
		case models.TransferInTransit:
			summary.InTransit++
		case models.TransferReceived:
			summary.Received++
		}
		for _, item := range t.Items {
			summary.TotalQuantity += item.Quantity
		}
		if len(t.Shortages) > 0 {
			summary.WithShortages++
		}
		if len(t.Damages) > 0 {
			summary.WithDamages++
		}
	}
	return summary, nil
}

// TransfersCSV exports all transfers as CSV.
func (s *ReportService) TransfersCSV(ctx context.Context) ([]byte, error) {
	transfers, err := s.transfers.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"#", "Transfer ID", "From", "To", "Driver", "Vehicle", "Status",
		"Items", "Total Qty", "Short", "Damaged", "Created", "Dispatched", "Received",
	})

	for i, t := range transfers {
		var totalQty int
		for _, item := range t.Items {
			totalQty += item.Quantity
		}
		var short int
		for _, sh := range t.Shortages {
			short += sh.QuantityShort
		}
		var damaged int
		for _, d := range t.Damages {
			damaged += d.QuantityDamaged
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			t.ID,
			s.locationName(ctx, t.FromLocationID),
			s.locationName(ctx, t.ToLocationID),
			t.DriverName,
			t.VehicleReg,
			string(t.Status),
			fmt.Sprintf("%d", len(t.Items)),
			fmt.Sprintf("%d", totalQty),
			fmt.Sprintf("%d", short),
			fmt.Sprintf("%d", damaged),
			t.CreatedAt.Format("02-Jan-2006 15:04"),
			formatOptionalTime(t.DispatchedAt),
			formatOptionalTime(t.ReceivedAt),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateManifestPDF renders the delivery manifest for one transfer.
func (s *ReportService) GenerateManifestPDF(ctx context.Context, id string) ([]byte, error) {
	t, err := s.transfers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Stock Control - Delivery Manifest", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Transfer Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Transfer Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Transfer ID: %s", t.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", t.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("From: %s", s.locationName(ctx, t.FromLocationID)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("To: %s", s.locationName(ctx, t.ToLocationID)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Driver: %s", t.DriverName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Vehicle: %s", t.VehicleReg), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Products", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(35, 7, "Code", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 7, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range t.Items {
		name := item.ProductName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		pdf.CellFormat(35, 6, item.ProductCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(85, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, item.Unit, "1", 1, "C", false, 0, "")
	}

	if len(t.Shortages) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 200, 200)
		pdf.CellFormat(190, 8, "Shortages", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(35, 7, "Code", "1", 0, "C", true, 0, "")
		pdf.CellFormat(120, 7, "Name", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Qty Short", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, sh := range t.Shortages {
			pdf.CellFormat(35, 6, sh.ProductCode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(120, 6, sh.ProductName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%d", sh.QuantityShort), "1", 1, "C", false, 0, "")
		}
	}

	if len(t.Damages) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 220, 180)
		pdf.CellFormat(190, 8, "Damages", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(35, 7, "Code", "1", 0, "C", true, 0, "")
		pdf.CellFormat(75, 7, "Name", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Qty Damaged", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Reason", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, d := range t.Damages {
			reason := d.Reason
			if len(reason) > 25 {
				reason = reason[:22] + "..."
			}
			pdf.CellFormat(35, 6, d.ProductCode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(75, 6, d.ProductName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", d.QuantityDamaged), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, reason, "1", 1, "L", false, 0, "")
		}
	}

	if t.Status == models.TransferReceived && len(t.Shortages) == 0 && len(t.Damages) == 0 {
		pdf.Ln(5)
		pdf.SetFillColor(200, 255, 200)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 10, "ALL PRODUCTS RECEIVED IN FULL", "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) locationName(ctx context.Context, id string) string {
	location, err := s.locations.Get(ctx, id)
	if err != nil {
		return id
	}
	return location.Name
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02-Jan-2006 15:04")
}
