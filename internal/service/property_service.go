package service

import (
	"context"
	"strings"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// PropertyInput carries property fields; nil fields are kept on update.
type PropertyInput struct {
	CategoryName    *string
	SubCategoryName *string
	FlatNumber      *string
	AssetIDs        *[]string
}

// PropertyService manages properties and their assigned assets.
type PropertyService struct {
	properties repository.PropertyRepository
	assets     repository.AssetRepository
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository, assets repository.AssetRepository) *PropertyService {
	return &PropertyService{properties: properties, assets: assets}
}

func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (*domain.Property, error) {
	category, sub, flat := strings.TrimSpace(deref(in.CategoryName)), strings.TrimSpace(deref(in.SubCategoryName)), strings.TrimSpace(deref(in.FlatNumber))
	if missing := missingFields("categoryName", category, "subCategoryName", sub, "flatNumber", flat); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	property := &domain.Property{
		CategoryName:    category,
		SubCategoryName: sub,
		FlatNumber:      flat,
		AssignedAssets:  []domain.AssetAssignment{},
	}
	if in.AssetIDs != nil {
		assignments, err := s.resolveAssets(ctx, *in.AssetIDs)
		if err != nil {
			return nil, err
		}
		property.AssignedAssets = assignments
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, repoError("property", err)
	}
	return property, nil
}

func (s *PropertyService) List(ctx context.Context) ([]domain.Property, error) {
	out, err := s.properties.List(ctx)
	return out, repoError("property", err)
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("property", err)
	}
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, in PropertyInput) (*domain.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyText(&property.CategoryName, in.CategoryName, "categoryName"); err != nil {
		return nil, err
	}
	if err := applyText(&property.SubCategoryName, in.SubCategoryName, "subCategoryName"); err != nil {
		return nil, err
	}
	if err := applyText(&property.FlatNumber, in.FlatNumber, "flatNumber"); err != nil {
		return nil, err
	}
	if in.AssetIDs != nil {
		assignments, err := s.resolveAssets(ctx, *in.AssetIDs)
		if err != nil {
			return nil, err
		}
		property.AssignedAssets = assignments
	}
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, repoError("property", err)
	}
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	return repoError("property", s.properties.Delete(ctx, id))
}

// resolveAssets checks that every referenced asset exists. Duplicates collapse.
func (s *PropertyService) resolveAssets(ctx context.Context, ids []string) ([]domain.AssetAssignment, error) {
	out := make([]domain.AssetAssignment, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		asset, err := s.assets.GetByID(ctx, id)
		if err != nil {
			return nil, repoError("asset", err)
		}
		out = append(out, domain.AssetAssignment{AssetID: asset.ID})
	}
	return out, nil
}
