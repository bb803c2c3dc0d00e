package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/cache"
	"stock-backend/internal/memstore"
	"stock-backend/internal/models"
)

func TestCreateProduct(t *testing.T) {
	store := memstore.New()
	service := NewProductService(store.Products)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code:     "  WID-1  ",
		Name:     "Widget",
		Category: "Hardware",
		Unit:     "boxes",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.ID == "" {
		t.Error("store did not assign an id")
	}
	if product.Code != "WID-1" {
		t.Errorf("code = %q, want trimmed", product.Code)
	}

	var verr *apperrors.ValidationError
	tests := []struct {
		name string
		req  models.CreateProductRequest
	}{
		{"missing code", models.CreateProductRequest{Name: "X", Unit: "kg"}},
		{"missing name", models.CreateProductRequest{Code: "X", Unit: "kg"}},
		{"bad unit", models.CreateProductRequest{Code: "X", Name: "X", Unit: "crates"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CreateProduct(ctx, &tt.req); !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateProductDuplicateCode(t *testing.T) {
	store := memstore.New()
	service := NewProductService(store.Products)
	ctx := context.Background()

	if _, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-1", Name: "Widget", Unit: "boxes",
	}); err != nil {
		t.Fatal(err)
	}

	var verr *apperrors.ValidationError
	_, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-1", Name: "Other Widget", Unit: "kg",
	})
	if !errors.As(err, &verr) {
		t.Errorf("duplicate code: err = %v, want ValidationError", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	store := memstore.New()
	service := NewProductService(store.Products)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-1", Name: "Widget", Unit: "boxes",
	})
	if err != nil {
		t.Fatal(err)
	}

	name := "Widget Mk2"
	updated, err := service.UpdateProduct(ctx, product.ID, &models.UpdateProductRequest{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Widget Mk2" || updated.Code != "WID-1" || updated.Unit != "boxes" {
		t.Errorf("partial update result = %+v", updated)
	}

	badUnit := "crates"
	var verr *apperrors.ValidationError
	if _, err := service.UpdateProduct(ctx, product.ID, &models.UpdateProductRequest{Unit: &badUnit}); !errors.As(err, &verr) {
		t.Errorf("bad unit: err = %v, want ValidationError", err)
	}

	other, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-2", Name: "Other", Unit: "kg",
	})
	if err != nil {
		t.Fatal(err)
	}
	takenCode := "WID-1"
	if _, err := service.UpdateProduct(ctx, other.ID, &models.UpdateProductRequest{Code: &takenCode}); !errors.As(err, &verr) {
		t.Errorf("taken code: err = %v, want ValidationError", err)
	}
	// Resubmitting a product's own code is not a conflict.
	ownCode := "WID-2"
	if _, err := service.UpdateProduct(ctx, other.ID, &models.UpdateProductRequest{Code: &ownCode}); err != nil {
		t.Errorf("own code resubmit: %v", err)
	}

	var nf *apperrors.NotFoundError
	if _, err := service.UpdateProduct(ctx, "missing", &models.UpdateProductRequest{Name: &name}); !errors.As(err, &nf) {
		t.Errorf("unknown id: err = %v, want NotFoundError", err)
	}
}

func TestListProductsServedFromCache(t *testing.T) {
	s := miniredis.RunT(t)
	if err := cache.Init(s.Addr(), ""); err != nil {
		t.Fatalf("cache.Init: %v", err)
	}
	t.Cleanup(cache.Close)

	store := memstore.New()
	service := NewProductService(store.Products)
	ctx := context.Background()

	if _, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-1", Name: "Widget", Unit: "boxes",
	}); err != nil {
		t.Fatal(err)
	}

	first, err := service.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("first list = %d products, want 1", len(first))
	}

	// A write that bypasses the service leaves the cache untouched, so
	// the next list is served from the cached copy.
	if err := store.Products.Create(ctx, &models.Product{Code: "WID-2", Name: "Other", Unit: "kg"}); err != nil {
		t.Fatal(err)
	}
	cached, err := service.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 1 {
		t.Errorf("cached list = %d products, want 1 (stale copy)", len(cached))
	}

	// A service write invalidates, so the next list reflects the store.
	if _, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-3", Name: "Third", Unit: "pieces",
	}); err != nil {
		t.Fatal(err)
	}
	fresh, err := service.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 3 {
		t.Errorf("fresh list = %d products, want 3 after invalidation", len(fresh))
	}
}

func TestDeleteProduct(t *testing.T) {
	store := memstore.New()
	service := NewProductService(store.Products)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, &models.CreateProductRequest{
		Code: "WID-1", Name: "Widget", Unit: "boxes",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := service.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatal(err)
	}

	var nf *apperrors.NotFoundError
	if _, err := service.GetProduct(ctx, product.ID); !errors.As(err, &nf) {
		t.Errorf("get after delete: err = %v, want NotFoundError", err)
	}
	if err := service.DeleteProduct(ctx, product.ID); !errors.As(err, &nf) {
		t.Errorf("double delete: err = %v, want NotFoundError", err)
	}
}
