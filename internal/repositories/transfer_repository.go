package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

const transferColumns = `id, from_location_id, to_location_id, driver_name, vehicle_reg,
	status, items, shortages, damages, created_by, dispatched_by, received_by,
	created_at, dispatched_at, received_at`

type TransferRepository struct {
	DB *pgxpool.Pool
}

func NewTransferRepository(db *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{DB: db}
}

func (r *TransferRepository) Create(ctx context.Context, t *models.Transfer) error {
	t.CreatedAt = time.Now().UTC()
	t.ID = models.NewTransferID(t.CreatedAt)

	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	_, err = r.DB.Exec(ctx,
		`INSERT INTO transfers(id, from_location_id, to_location_id, driver_name, vehicle_reg,
                               status, items, created_by, created_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.FromLocationID, t.ToLocationID, t.DriverName, t.VehicleReg,
		t.Status, items, t.CreatedBy, t.CreatedAt)
	return err
}

func (r *TransferRepository) Get(ctx context.Context, id string) (*models.Transfer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE id=$1`, id)
	t, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("transfer", id)
	}
	return t, err
}

func (r *TransferRepository) List(ctx context.Context) ([]*models.Transfer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transferColumns+` FROM transfers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// MarkDispatched transitions pending -> in_transit. The status precondition
// lives in the WHERE clause so concurrent dispatchers race on the database
// row, not on an in-process read: only one update matches.
func (r *TransferRepository) MarkDispatched(ctx context.Context, id, userID string, at time.Time) (*models.Transfer, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE transfers
         SET status=$3, dispatched_by=$4, dispatched_at=$5
         WHERE id=$1 AND status=$2
         RETURNING `+transferColumns,
		id, models.TransferPending, models.TransferInTransit, userID, at)

	t, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, id, "dispatch")
	}
	return t, err
}

// MarkReceived transitions in_transit -> received with the same conditional
// update discipline as MarkDispatched.
func (r *TransferRepository) MarkReceived(ctx context.Context, id, userID string, at time.Time, shortages []models.ShortageItem, damages []models.DamageItem) (*models.Transfer, error) {
	encodedShortages, err := json.Marshal(shortages)
	if err != nil {
		return nil, fmt.Errorf("encoding shortages: %w", err)
	}
	encodedDamages, err := json.Marshal(damages)
	if err != nil {
		return nil, fmt.Errorf("encoding damages: %w", err)
	}

	row := r.DB.QueryRow(ctx,
		`UPDATE transfers
         SET status=$3, received_by=$4, received_at=$5, shortages=$6, damages=$7
         WHERE id=$1 AND status=$2
         RETURNING `+transferColumns,
		id, models.TransferInTransit, models.TransferReceived, userID, at,
		encodedShortages, encodedDamages)

	t, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, id, "receive")
	}
	return t, err
}

// transitionError distinguishes a missing transfer from one in the wrong
// state after a conditional update matched no row.
func (r *TransferRepository) transitionError(ctx context.Context, id, action string) error {
	var status string
	err := r.DB.QueryRow(ctx, `SELECT status FROM transfers WHERE id=$1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("transfer", id)
	}
	if err != nil {
		return err
	}
	return &apperrors.InvalidTransitionError{TransferID: id, Action: action, Status: status}
}

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	var (
		t         models.Transfer
		items     []byte
		shortages []byte
		damages   []byte
	)
	err := row.Scan(&t.ID, &t.FromLocationID, &t.ToLocationID, &t.DriverName, &t.VehicleReg,
		&t.Status, &items, &shortages, &damages, &t.CreatedBy, &t.DispatchedBy, &t.ReceivedBy,
		&t.CreatedAt, &t.DispatchedAt, &t.ReceivedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &t.Items); err != nil {
		return nil, fmt.Errorf("decoding items for %s: %w", t.ID, err)
	}
	if shortages != nil {
		if err := json.Unmarshal(shortages, &t.Shortages); err != nil {
			return nil, fmt.Errorf("decoding shortages for %s: %w", t.ID, err)
		}
	}
	if damages != nil {
		if err := json.Unmarshal(damages, &t.Damages); err != nil {
			return nil, fmt.Errorf("decoding damages for %s: %w", t.ID, err)
		}
	}
	return &t, nil
}
