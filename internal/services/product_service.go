package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/cache"
	"stock-backend/internal/models"
)

// listCacheTTL bounds staleness for the cached product/location lists when
// an invalidation is lost (Redis restart, competing writer).
const listCacheTTL = 5 * time.Minute

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.Validationf("code and name are required")
	}
	if !models.ValidUnit(req.Unit) {
		return nil, apperrors.Validationf("unknown unit %q", req.Unit)
	}

	if existing, _ := s.store.GetByCode(ctx, code); existing != nil {
		return nil, apperrors.Validationf("a product with code %s already exists", code)
	}

	product := &models.Product{
		Code:     code,
		Name:     name,
		Category: req.Category,
		Unit:     req.Unit,
	}
	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}
	cache.InvalidateKeys(ctx, cache.ProductListKey)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if data, ok := cache.GetCached(ctx, cache.ProductListKey); ok {
		var products []*models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(products); err == nil {
		cache.SetCached(ctx, cache.ProductListKey, data, listCacheTTL)
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, apperrors.Validationf("code cannot be empty")
		}
		if code != product.Code {
			if existing, _ := s.store.GetByCode(ctx, code); existing != nil && existing.ID != id {
				return nil, apperrors.Validationf("a product with code %s already exists", code)
			}
		}
		product.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validationf("name cannot be empty")
		}
		product.Name = name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		if !models.ValidUnit(*req.Unit) {
			return nil, apperrors.Validationf("unknown unit %q", *req.Unit)
		}
		product.Unit = *req.Unit
	}

	if err := s.store.Update(ctx, product); err != nil {
		return nil, err
	}
	cache.InvalidateKeys(ctx, cache.ProductListKey)
	return product, nil
}

// DeleteProduct removes a product. Transfers that referenced it keep their
// denormalized snapshot, so history stays intact.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateKeys(ctx, cache.ProductListKey)
	return nil
}
