package memstore

import (
	"context"
	"sync"
	"time"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

type TransferStore struct {
	mu        sync.RWMutex
	transfers map[string]*models.Transfer
	order     []string
}

func NewTransferStore() *TransferStore {
	return &TransferStore{transfers: make(map[string]*models.Transfer)}
}

func (s *TransferStore) Create(ctx context.Context, t *models.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.CreatedAt = time.Now().UTC()
	t.ID = models.NewTransferID(t.CreatedAt)
	for {
		if _, taken := s.transfers[t.ID]; !taken {
			break
		}
		t.ID = models.NewTransferID(t.CreatedAt)
	}
	s.transfers[t.ID] = cloneTransfer(t)
	s.order = append(s.order, t.ID)
	return nil
}

func (s *TransferStore) Get(ctx context.Context, id string) (*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transfers[id]
	if !ok {
		return nil, apperrors.NotFound("transfer", id)
	}
	return cloneTransfer(t), nil
}

func (s *TransferStore) List(ctx context.Context) ([]*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Transfer, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.transfers[id]; ok {
			out = append(out, cloneTransfer(t))
		}
	}
	return out, nil
}

// MarkDispatched performs the pending -> in_transit transition under the
// store lock, so of two concurrent dispatch calls exactly one wins.
func (s *TransferStore) MarkDispatched(ctx context.Context, id, userID string, at time.Time) (*models.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transfers[id]
	if !ok {
		return nil, apperrors.NotFound("transfer", id)
	}
	if t.Status != models.TransferPending {
		return nil, &apperrors.InvalidTransitionError{TransferID: id, Action: "dispatch", Status: string(t.Status)}
	}

	t.Status = models.TransferInTransit
	t.DispatchedBy = &userID
	t.DispatchedAt = &at
	return cloneTransfer(t), nil
}

// MarkReceived performs the in_transit -> received transition. Shortages
// and damages arrive already filtered and are written exactly once.
func (s *TransferStore) MarkReceived(ctx context.Context, id, userID string, at time.Time, shortages []models.ShortageItem, damages []models.DamageItem) (*models.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transfers[id]
	if !ok {
		return nil, apperrors.NotFound("transfer", id)
	}
	if t.Status != models.TransferInTransit {
		return nil, &apperrors.InvalidTransitionError{TransferID: id, Action: "receive", Status: string(t.Status)}
	}

	t.Status = models.TransferReceived
	t.ReceivedBy = &userID
	t.ReceivedAt = &at
	t.Shortages = append([]models.ShortageItem(nil), shortages...)
	t.Damages = append([]models.DamageItem(nil), damages...)
	return cloneTransfer(t), nil
}

func cloneTransfer(t *models.Transfer) *models.Transfer {
	out := *t
	out.Items = append([]models.TransferItem(nil), t.Items...)
	out.Shortages = append([]models.ShortageItem(nil), t.Shortages...)
	out.Damages = append([]models.DamageItem(nil), t.Damages...)
	if t.DispatchedBy != nil {
		v := *t.DispatchedBy
		out.DispatchedBy = &v
	}
	if t.DispatchedAt != nil {
		v := *t.DispatchedAt
		out.DispatchedAt = &v
	}
	if t.ReceivedBy != nil {
		v := *t.ReceivedBy
		out.ReceivedBy = &v
	}
	if t.ReceivedAt != nil {
		v := *t.ReceivedAt
		out.ReceivedAt = &v
	}
	return &out
}
