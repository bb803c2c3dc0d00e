// Package notify delivers "transfer received" notifications. The lifecycle
// engine emits an Event after the state transition commits and never learns
// about mail providers; failures here are logged by the caller and must not
// affect the transfer.
package notify

import (
	"context"

	"stock-backend/internal/models"
)

// Event carries everything needed to compose a notification. Location
// names are resolved by the caller; an orphaned reference arrives as the
// raw id.
type Event struct {
	Transfer     *models.Transfer
	FromLocation string
	ToLocation   string
	IsTest       bool
}

// Notifier sends a notification for a received transfer.
type Notifier interface {
	TransferReceived(ctx context.Context, ev Event) error
}
