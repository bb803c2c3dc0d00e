package services

import (
	"context"
	"errors"
	"testing"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/memstore"
	"stock-backend/internal/models"
)

func TestLocationCRUD(t *testing.T) {
	store := memstore.New()
	service := NewLocationService(store.Locations)
	ctx := context.Background()

	var verr *apperrors.ValidationError
	if _, err := service.CreateLocation(ctx, &models.CreateLocationRequest{Name: "   "}); !errors.As(err, &verr) {
		t.Errorf("blank name: err = %v, want ValidationError", err)
	}

	location, err := service.CreateLocation(ctx, &models.CreateLocationRequest{
		Name:    "Main Warehouse",
		Address: "1 Depot Road",
	})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if location.ID == "" {
		t.Error("store did not assign an id")
	}

	if _, err := service.CreateLocation(ctx, &models.CreateLocationRequest{Name: "Main Warehouse"}); !errors.As(err, &verr) {
		t.Errorf("duplicate name: err = %v, want ValidationError", err)
	}

	name := "Central Warehouse"
	updated, err := service.UpdateLocation(ctx, location.ID, &models.UpdateLocationRequest{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Central Warehouse" || updated.Address != "1 Depot Road" {
		t.Errorf("partial update result = %+v", updated)
	}

	branch, err := service.CreateLocation(ctx, &models.CreateLocationRequest{Name: "Branch Store"})
	if err != nil {
		t.Fatal(err)
	}
	taken := "Central Warehouse"
	if _, err := service.UpdateLocation(ctx, branch.ID, &models.UpdateLocationRequest{Name: &taken}); !errors.As(err, &verr) {
		t.Errorf("taken name: err = %v, want ValidationError", err)
	}
	if err := service.DeleteLocation(ctx, branch.ID); err != nil {
		t.Fatal(err)
	}

	all, err := service.ListLocations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("list = %d locations, want 1", len(all))
	}

	if err := service.DeleteLocation(ctx, location.ID); err != nil {
		t.Fatal(err)
	}
	var nf *apperrors.NotFoundError
	if _, err := service.GetLocation(ctx, location.ID); !errors.As(err, &nf) {
		t.Errorf("get after delete: err = %v, want NotFoundError", err)
	}
}
