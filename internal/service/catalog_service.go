package service

import (
	"context"
	"strings"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// SubcategoryInput carries subcategory fields; nil fields are kept on update.
type SubcategoryInput struct {
	CategoryName    *string
	SubCategoryName *string
}

// CatalogService manages categories, subcategories and items.
type CatalogService struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	items         repository.ItemRepository
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CategoryRepo    repository.CategoryRepository
	SubcategoryRepo repository.SubcategoryRepository
	ItemRepo        repository.ItemRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories:    deps.CategoryRepo,
		subcategories: deps.SubcategoryRepo,
		items:         deps.ItemRepo,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out, err := s.categories.List(ctx)
	return out, repoError("category", err)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("category", err)
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewMissingFields("categoryName")
	}
	category := &domain.Category{CategoryName: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, repoError("category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewMissingFields("categoryName")
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.CategoryName = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, repoError("category", err)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return repoError("category", s.categories.Delete(ctx, id))
}

func (s *CatalogService) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	out, err := s.subcategories.List(ctx)
	return out, repoError("subcategory", err)
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	sub, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("subcategory", err)
	}
	return sub, nil
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, in SubcategoryInput) (*domain.Subcategory, error) {
	categoryName, subName := strings.TrimSpace(deref(in.CategoryName)), strings.TrimSpace(deref(in.SubCategoryName))
	if missing := missingFields("categoryName", categoryName, "subCategoryName", subName); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	sub := &domain.Subcategory{CategoryName: categoryName, SubCategoryName: subName}
	if err := s.subcategories.Create(ctx, sub); err != nil {
		return nil, repoError("subcategory", err)
	}
	return sub, nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, id string, in SubcategoryInput) (*domain.Subcategory, error) {
	sub, err := s.GetSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyText(&sub.CategoryName, in.CategoryName, "categoryName"); err != nil {
		return nil, err
	}
	if err := applyText(&sub.SubCategoryName, in.SubCategoryName, "subCategoryName"); err != nil {
		return nil, err
	}
	if err := s.subcategories.Update(ctx, sub); err != nil {
		return nil, repoError("subcategory", err)
	}
	return sub, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id string) error {
	return repoError("subcategory", s.subcategories.Delete(ctx, id))
}

func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	out, err := s.items.List(ctx)
	return out, repoError("item", err)
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("item", err)
	}
	return item, nil
}

func (s *CatalogService) CreateItem(ctx context.Context, name string) (*domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewMissingFields("itemName")
	}
	item := &domain.Item{ItemName: name}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, repoError("item", err)
	}
	return item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id, name string) (*domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewMissingFields("itemName")
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.ItemName = name
	if err := s.items.Update(ctx, item); err != nil {
		return nil, repoError("item", err)
	}
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	return repoError("item", s.items.Delete(ctx, id))
}
