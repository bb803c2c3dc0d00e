package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	order    []string
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*models.Product)}
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	cp := *p
	s.products[p.ID] = &cp
	s.order = append(s.order, p.ID)
	return nil
}

func (s *ProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (s *ProductStore) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("product", code)
}

func (s *ProductStore) List(ctx context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Product, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return apperrors.NotFound("product", p.ID)
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

// Delete removes the product; deleting an unknown id is a no-op.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}
