package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
	order []string
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = cloneUser(u)
	s.order = append(s.order, u.ID)
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return cloneUser(u), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if u, ok := s.users[id]; ok && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.NotFound("user", email)
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		if u, ok := s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return apperrors.NotFound("user", u.ID)
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

// Delete removes the user; deleting an unknown id is a no-op.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func cloneUser(u *models.User) *models.User {
	out := *u
	out.Permissions = append([]string(nil), u.Permissions...)
	return &out
}
