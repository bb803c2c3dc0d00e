package services

import (
	"context"
	"time"

	"stock-backend/internal/models"
)

// Store contracts implemented by both the pgx repositories and the
// in-memory store. Services depend only on these so the backing store can
// be swapped without touching lifecycle logic.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	// GetByEmail is a case-sensitive exact match. Email is expected-unique
	// but the store does not enforce it; callers are responsible.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	// GetByCode resolves the product's unique business key.
	GetByCode(ctx context.Context, code string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

type LocationStore interface {
	Create(ctx context.Context, l *models.Location) error
	Get(ctx context.Context, id string) (*models.Location, error)
	// GetByName resolves the location's unique display name.
	GetByName(ctx context.Context, name string) (*models.Location, error)
	List(ctx context.Context) ([]*models.Location, error)
	Update(ctx context.Context, l *models.Location) error
	Delete(ctx context.Context, id string) error
}

// TransferStore persists transfers. Status is never writable through a
// generic update; the only mutations are the two conditional transitions,
// which must be atomic on the observed prior status so that of two
// concurrent calls at most one succeeds.
type TransferStore interface {
	Create(ctx context.Context, t *models.Transfer) error
	Get(ctx context.Context, id string) (*models.Transfer, error)
	List(ctx context.Context) ([]*models.Transfer, error)
	// MarkDispatched transitions pending -> in_transit. Returns
	// *apperrors.NotFoundError for an unknown id and
	// *apperrors.InvalidTransitionError when the transfer is not pending.
	MarkDispatched(ctx context.Context, id, userID string, at time.Time) (*models.Transfer, error)
	// MarkReceived transitions in_transit -> received and records the
	// already-filtered shortages and damages. Same error contract as
	// MarkDispatched.
	MarkReceived(ctx context.Context, id, userID string, at time.Time, shortages []models.ShortageItem, damages []models.DamageItem) (*models.Transfer, error)
}

type EmailSettingsStore interface {
	// Get returns (nil, nil) when no settings have been saved yet.
	Get(ctx context.Context) (*models.EmailSettings, error)
	Save(ctx context.Context, s *models.EmailSettings) error
}
