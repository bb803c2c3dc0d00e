package services

import (
	"context"
	"encoding/json"
	"strings"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/cache"
	"stock-backend/internal/models"
)

type LocationService struct {
	store LocationStore
}

func NewLocationService(store LocationStore) *LocationService {
	return &LocationService{store: store}
}

func (s *LocationService) CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("name is required")
	}

	if existing, _ := s.store.GetByName(ctx, name); existing != nil {
		return nil, apperrors.Validationf("a location named %s already exists", name)
	}

	location := &models.Location{
		Name:    name,
		Address: req.Address,
	}
	if err := s.store.Create(ctx, location); err != nil {
		return nil, err
	}
	cache.InvalidateKeys(ctx, cache.LocationListKey)
	return location, nil
}

func (s *LocationService) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return s.store.Get(ctx, id)
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	if data, ok := cache.GetCached(ctx, cache.LocationListKey); ok {
		var locations []*models.Location
		if err := json.Unmarshal(data, &locations); err == nil {
			return locations, nil
		}
	}

	locations, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(locations); err == nil {
		cache.SetCached(ctx, cache.LocationListKey, data, listCacheTTL)
	}
	return locations, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id string, req *models.UpdateLocationRequest) (*models.Location, error) {
	location, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validationf("name cannot be empty")
		}
		if name != location.Name {
			if existing, _ := s.store.GetByName(ctx, name); existing != nil && existing.ID != id {
				return nil, apperrors.Validationf("a location named %s already exists", name)
			}
		}
		location.Name = name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}

	if err := s.store.Update(ctx, location); err != nil {
		return nil, err
	}
	cache.InvalidateKeys(ctx, cache.LocationListKey)
	return location, nil
}

// DeleteLocation removes a location. Existing transfers keep the raw id;
// readers resolve a missing location to the id itself.
func (s *LocationService) DeleteLocation(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateKeys(ctx, cache.LocationListKey)
	return nil
}
