package service

import (
	"context"
	"testing"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

func TestPropertyAssets(t *testing.T) {
	ctx := context.Background()
	assets := repositorytest.NewMemory[domain.Asset](nil)
	properties := repositorytest.NewMemory[domain.Property](nil)
	svc := NewPropertyService(properties, assets)

	boiler := &domain.Asset{Name: "Boiler", Status: domain.AssetStatusActive}
	if err := assets.Create(ctx, boiler); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	id := boiler.ID.Hex()

	property, err := svc.Create(ctx, PropertyInput{
		CategoryName:    strPtr("Residential"),
		SubCategoryName: strPtr("Apartment"),
		FlatNumber:      strPtr("4B"),
		AssetIDs:        &[]string{id, id},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(property.AssignedAssets) != 1 || property.AssignedAssets[0].AssetID != boiler.ID {
		t.Fatalf("assigned assets = %+v", property.AssignedAssets)
	}

	_, err = svc.Create(ctx, PropertyInput{
		CategoryName:    strPtr("Residential"),
		SubCategoryName: strPtr("Apartment"),
		FlatNumber:      strPtr("5C"),
		AssetIDs:        &[]string{"65f000000000000000000000"},
	})
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = svc.Create(ctx, PropertyInput{CategoryName: strPtr("Residential")})
	requireCode(t, err, apperrors.CodeValidation)
	if err.Error() != "Missing required fields: subCategoryName, flatNumber" {
		t.Fatalf("message = %q", err.Error())
	}

	updated, err := svc.Update(ctx, property.ID.Hex(), PropertyInput{FlatNumber: strPtr("4C"), AssetIDs: &[]string{}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FlatNumber != "4C" || len(updated.AssignedAssets) != 0 || updated.CategoryName != "Residential" {
		t.Fatalf("unexpected property: %+v", updated)
	}

	if err := svc.Delete(ctx, property.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Get(ctx, property.ID.Hex())
	requireCode(t, err, apperrors.CodeNotFound)
}
