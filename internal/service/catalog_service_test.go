package service

import (
	"context"
	"testing"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

func newCatalogService() *CatalogService {
	return NewCatalogService(CatalogDependencies{
		CategoryRepo: repositorytest.NewMemory[domain.Category](func(c *domain.Category) string { return c.CategoryName }),
		SubcategoryRepo: repositorytest.NewMemory[domain.Subcategory](func(s *domain.Subcategory) string {
			return s.CategoryName + "\x00" + s.SubCategoryName
		}),
		ItemRepo: repositorytest.NewMemory[domain.Item](func(i *domain.Item) string { return i.ItemName }),
	})
}

func strPtr(s string) *string { return &s }

func TestCategoryCRUD(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, "  HVAC ")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if first.CategoryName != "HVAC" {
		t.Fatalf("name = %q, want trimmed", first.CategoryName)
	}
	if _, err := svc.CreateCategory(ctx, "Plumbing"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.CreateCategory(ctx, "HVAC")
	requireCode(t, err, apperrors.CodeConflict)

	_, err = svc.CreateCategory(ctx, " ")
	requireCode(t, err, apperrors.CodeValidation)

	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 2 || list[0].CategoryName != "Plumbing" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	_, err = svc.UpdateCategory(ctx, first.ID.Hex(), "Plumbing")
	requireCode(t, err, apperrors.CodeConflict)

	renamed, err := svc.UpdateCategory(ctx, first.ID.Hex(), "Heating")
	if err != nil || renamed.CategoryName != "Heating" {
		t.Fatalf("UpdateCategory = %+v, %v", renamed, err)
	}

	if err := svc.DeleteCategory(ctx, first.ID.Hex()); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	requireCode(t, svc.DeleteCategory(ctx, first.ID.Hex()), apperrors.CodeNotFound)
	requireCode(t, svc.DeleteCategory(ctx, "xyz"), apperrors.CodeInvalidID)
}

func TestSubcategoryUniquePerCategory(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	if _, err := svc.CreateSubcategory(ctx, SubcategoryInput{CategoryName: strPtr("HVAC"), SubCategoryName: strPtr("Filters")}); err != nil {
		t.Fatalf("CreateSubcategory: %v", err)
	}
	if _, err := svc.CreateSubcategory(ctx, SubcategoryInput{CategoryName: strPtr("Plumbing"), SubCategoryName: strPtr("Filters")}); err != nil {
		t.Fatalf("same subcategory under another category: %v", err)
	}
	_, err := svc.CreateSubcategory(ctx, SubcategoryInput{CategoryName: strPtr("HVAC"), SubCategoryName: strPtr("Filters")})
	requireCode(t, err, apperrors.CodeConflict)

	_, err = svc.CreateSubcategory(ctx, SubcategoryInput{})
	requireCode(t, err, apperrors.CodeValidation)
	if err.Error() != "Missing required fields: categoryName, subCategoryName" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestSubcategoryPartialUpdate(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()
	sub, err := svc.CreateSubcategory(ctx, SubcategoryInput{CategoryName: strPtr("HVAC"), SubCategoryName: strPtr("Ducts")})
	if err != nil {
		t.Fatalf("CreateSubcategory: %v", err)
	}

	updated, err := svc.UpdateSubcategory(ctx, sub.ID.Hex(), SubcategoryInput{SubCategoryName: strPtr("Vents")})
	if err != nil {
		t.Fatalf("UpdateSubcategory: %v", err)
	}
	if updated.CategoryName != "HVAC" || updated.SubCategoryName != "Vents" {
		t.Fatalf("unexpected subcategory: %+v", updated)
	}

	_, err = svc.UpdateSubcategory(ctx, sub.ID.Hex(), SubcategoryInput{CategoryName: strPtr("")})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestItemCRUD(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Ladder")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	_, err = svc.CreateItem(ctx, "Ladder")
	requireCode(t, err, apperrors.CodeConflict)

	updated, err := svc.UpdateItem(ctx, item.ID.Hex(), "Step ladder")
	if err != nil || updated.ItemName != "Step ladder" {
		t.Fatalf("UpdateItem = %+v, %v", updated, err)
	}
	_, err = svc.UpdateItem(ctx, "65f000000000000000000000", "Drill")
	requireCode(t, err, apperrors.CodeNotFound)

	if err := svc.DeleteItem(ctx, item.ID.Hex()); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	items, _ := svc.ListItems(ctx)
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0", len(items))
	}
}

func TestCatalogGetByID(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Electrical")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	sub, err := svc.CreateSubcategory(ctx, SubcategoryInput{CategoryName: strPtr("Electrical"), SubCategoryName: strPtr("Lighting")})
	if err != nil {
		t.Fatalf("CreateSubcategory: %v", err)
	}
	item, err := svc.CreateItem(ctx, "Ladder")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if got, err := svc.GetCategory(ctx, category.ID.Hex()); err != nil || got.CategoryName != "Electrical" {
		t.Fatalf("GetCategory = %+v, %v", got, err)
	}
	if got, err := svc.GetSubcategory(ctx, sub.ID.Hex()); err != nil || got.SubCategoryName != "Lighting" {
		t.Fatalf("GetSubcategory = %+v, %v", got, err)
	}
	if got, err := svc.GetItem(ctx, item.ID.Hex()); err != nil || got.ItemName != "Ladder" {
		t.Fatalf("GetItem = %+v, %v", got, err)
	}

	const absent = "65f0000000000000000000aa"
	tests := []struct {
		name string
		get  func(id string) error
	}{
		{"category", func(id string) error { _, err := svc.GetCategory(ctx, id); return err }},
		{"subcategory", func(id string) error { _, err := svc.GetSubcategory(ctx, id); return err }},
		{"item", func(id string) error { _, err := svc.GetItem(ctx, id); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.get("not-an-id"), apperrors.CodeInvalidID)
			requireCode(t, tt.get(absent), apperrors.CodeNotFound)
		})
	}
}
