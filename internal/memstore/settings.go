package memstore

import (
	"context"
	"sync"
	"time"

	"stock-backend/internal/models"
)

type SettingsStore struct {
	mu       sync.RWMutex
	settings *models.EmailSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.EmailSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *models.EmailSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.ID = "default"
	settings.UpdatedAt = time.Now().UTC()
	cp := *settings
	s.settings = &cp
	return nil
}
