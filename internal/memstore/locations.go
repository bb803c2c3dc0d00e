package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

type LocationStore struct {
	mu        sync.RWMutex
	locations map[string]*models.Location
	order     []string
}

func NewLocationStore() *LocationStore {
	return &LocationStore{locations: make(map[string]*models.Location)}
}

func (s *LocationStore) Create(ctx context.Context, l *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uuid.NewString()
	l.CreatedAt = time.Now().UTC()
	cp := *l
	s.locations[l.ID] = &cp
	s.order = append(s.order, l.ID)
	return nil
}

func (s *LocationStore) Get(ctx context.Context, id string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.locations[id]
	if !ok {
		return nil, apperrors.NotFound("location", id)
	}
	cp := *l
	return &cp, nil
}

func (s *LocationStore) GetByName(ctx context.Context, name string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.locations {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("location", name)
}

func (s *LocationStore) List(ctx context.Context) ([]*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Location, 0, len(s.order))
	for _, id := range s.order {
		if l, ok := s.locations[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *LocationStore) Update(ctx context.Context, l *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[l.ID]; !ok {
		return apperrors.NotFound("location", l.ID)
	}
	cp := *l
	s.locations[l.ID] = &cp
	return nil
}

// Delete removes the location; deleting an unknown id is a no-op.
// Transfers referencing it keep the raw id and render it unresolved.
func (s *LocationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locations, id)
	return nil
}
