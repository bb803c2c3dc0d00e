package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the lifecycle state of a transfer. Transfers only ever
// move forward: pending -> in_transit -> received.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferReceived  TransferStatus = "received"
)

// NewTransferID builds a transfer id that is human-scannable and sorts by
// creation order: TRF-<unix millis>-<4 hex chars>.
func NewTransferID(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("TRF-%d-%s", now.UnixMilli(), suffix)
}

// TransferItem is a product line captured at transfer creation. Code, name
// and unit are denormalized from the product so later product edits do not
// rewrite historical transfers.
type TransferItem struct {
	ProductID   string `json:"productId"`
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

// ShortageItem records a quantity of a line that never arrived.
type ShortageItem struct {
	ProductID     string `json:"productId"`
	ProductCode   string `json:"productCode"`
	ProductName   string `json:"productName"`
	QuantityShort int    `json:"quantityShort"`
}

// DamageItem records a quantity that arrived unusable, with a reason.
type DamageItem struct {
	ProductID       string `json:"productId"`
	ProductCode     string `json:"productCode"`
	ProductName     string `json:"productName"`
	QuantityDamaged int    `json:"quantityDamaged"`
	Reason          string `json:"reason"`
}

type Transfer struct {
	ID             string         `json:"id"`
	FromLocationID string         `json:"fromLocationId"`
	ToLocationID   string         `json:"toLocationId"`
	DriverName     string         `json:"driverName"`
	VehicleReg     string         `json:"vehicleReg"`
	Status         TransferStatus `json:"status"`
	Items          []TransferItem `json:"items"`
	Shortages      []ShortageItem `json:"shortages"`
	Damages        []DamageItem   `json:"damages"`
	CreatedBy      string         `json:"createdBy"`
	DispatchedBy   *string        `json:"dispatchedBy"`
	ReceivedBy     *string        `json:"receivedBy"`
	CreatedAt      time.Time      `json:"createdAt"`
	DispatchedAt   *time.Time     `json:"dispatchedAt"`
	ReceivedAt     *time.Time     `json:"receivedAt"`
}

// CreateTransferItem is an item line as submitted by the client. Only the
// product reference and quantity are trusted; code/name/unit come from the
// stored product.
type CreateTransferItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateTransferRequest is the request body for creating a transfer.
type CreateTransferRequest struct {
	FromLocationID string               `json:"fromLocationId"`
	ToLocationID   string               `json:"toLocationId"`
	DriverName     string               `json:"driverName"`
	VehicleReg     string               `json:"vehicleReg"`
	Items          []CreateTransferItem `json:"items"`
}

// ReceiveTransferRequest is the request body for receiving a transfer. The
// UI submits a row per item even when nothing is short or damaged, so zero
// quantities are expected and filtered out.
type ReceiveTransferRequest struct {
	Shortages []ShortageItem `json:"shortages"`
	Damages   []DamageItem   `json:"damages"`
}
