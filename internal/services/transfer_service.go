package services

import (
	"context"
	"log"
	"strings"
	"time"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/metrics"
	"stock-backend/internal/models"
	"stock-backend/internal/notify"
)

// TransferService drives the transfer lifecycle. Status only ever moves
// forward through Dispatch and Receive; there is no generic update, delete
// or cancel.
type TransferService struct {
	transfers TransferStore
	products  ProductStore
	locations LocationStore
	notifier  notify.Notifier

	// notifyTimeout bounds the background send after a receive commits.
	notifyTimeout time.Duration

	now func() time.Time
}

func NewTransferService(transfers TransferStore, products ProductStore, locations LocationStore, notifier notify.Notifier, notifyTimeout time.Duration) *TransferService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &TransferService{
		transfers:     transfers,
		products:      products,
		locations:     locations,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		now:           time.Now,
	}
}

// CreateTransfer validates the request, snapshots product code/name/unit
// into the item lines and stores the transfer as pending. Later product
// edits never rewrite transfer history.
func (s *TransferService) CreateTransfer(ctx context.Context, req *models.CreateTransferRequest, createdBy string) (*models.Transfer, error) {
	if req.FromLocationID == "" || req.ToLocationID == "" {
		return nil, apperrors.Validationf("fromLocationId and toLocationId are required")
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, apperrors.Validationf("fromLocationId and toLocationId must differ")
	}
	if strings.TrimSpace(req.DriverName) == "" {
		return nil, apperrors.Validationf("driverName is required")
	}
	if strings.TrimSpace(req.VehicleReg) == "" {
		return nil, apperrors.Validationf("vehicleReg is required")
	}
	if len(req.Items) == 0 {
		return nil, apperrors.Validationf("a transfer needs at least one item")
	}

	if _, err := s.locations.Get(ctx, req.FromLocationID); err != nil {
		return nil, apperrors.Validationf("unknown from location %s", req.FromLocationID)
	}
	if _, err := s.locations.Get(ctx, req.ToLocationID); err != nil {
		return nil, apperrors.Validationf("unknown to location %s", req.ToLocationID)
	}

	items := make([]models.TransferItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, apperrors.Validationf("item quantity must be at least 1")
		}
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return nil, apperrors.Validationf("unknown product %s", line.ProductID)
		}
		items = append(items, models.TransferItem{
			ProductID:   product.ID,
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Unit:        product.Unit,
		})
	}

	// The store assigns the transfer id and creation time.
	transfer := &models.Transfer{
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		DriverName:     strings.TrimSpace(req.DriverName),
		VehicleReg:     strings.TrimSpace(req.VehicleReg),
		Status:         models.TransferPending,
		Items:          items,
		Shortages:      []models.ShortageItem{},
		Damages:        []models.DamageItem{},
		CreatedBy:      createdBy,
	}
	if err := s.transfers.Create(ctx, transfer); err != nil {
		return nil, err
	}
	metrics.TransfersCreated.Inc()
	return transfer, nil
}

func (s *TransferService) GetTransfer(ctx context.Context, id string) (*models.Transfer, error) {
	return s.transfers.Get(ctx, id)
}

func (s *TransferService) ListTransfers(ctx context.Context) ([]*models.Transfer, error) {
	return s.transfers.List(ctx)
}

// DispatchTransfer moves a pending transfer to in_transit. The store
// transition is conditional on the pending status, so of two concurrent
// dispatches exactly one succeeds and the other gets an
// InvalidTransitionError.
func (s *TransferService) DispatchTransfer(ctx context.Context, id, userID string) (*models.Transfer, error) {
	transfer, err := s.transfers.MarkDispatched(ctx, id, userID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	metrics.TransfersDispatched.Inc()
	return transfer, nil
}

// ReceiveTransfer moves an in_transit transfer to received, recording any
// reported shortages and damages. The UI submits a row per item, so zero
// quantities are expected and dropped here. After the transition commits a
// notification goes out on a background goroutine; its failure never
// reaches the caller.
func (s *TransferService) ReceiveTransfer(ctx context.Context, id, userID string, req *models.ReceiveTransferRequest) (*models.Transfer, error) {
	shortages := make([]models.ShortageItem, 0, len(req.Shortages))
	for _, sh := range req.Shortages {
		if sh.QuantityShort > 0 {
			shortages = append(shortages, sh)
		}
	}
	damages := make([]models.DamageItem, 0, len(req.Damages))
	for _, d := range req.Damages {
		if d.QuantityDamaged > 0 {
			damages = append(damages, d)
		}
	}

	transfer, err := s.transfers.MarkReceived(ctx, id, userID, s.now().UTC(), shortages, damages)
	if err != nil {
		return nil, err
	}
	metrics.TransfersReceived.Inc()

	s.notifyReceived(transfer)
	return transfer, nil
}

// notifyReceived fires the notification on its own goroutine and timeout
// so a slow mail provider never holds the receive response.
func (s *TransferService) notifyReceived(transfer *models.Transfer) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		ev := notify.Event{
			Transfer:     transfer,
			FromLocation: s.locationName(ctx, transfer.FromLocationID),
			ToLocation:   s.locationName(ctx, transfer.ToLocationID),
		}
		if err := s.notifier.TransferReceived(ctx, ev); err != nil {
			metrics.NotificationFailures.Inc()
			nerr := &apperrors.NotificationError{Err: err}
			log.Printf("[Transfers] %v", nerr)
		}
	}()
}

// locationName resolves a location id for display, falling back to the
// raw id when the location has been deleted.
func (s *TransferService) locationName(ctx context.Context, id string) string {
	location, err := s.locations.Get(ctx, id)
	if err != nil {
		return id
	}
	return location.Name
}
