package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/blob"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// MaxImageBytes bounds the decoded size of a single uploaded image.
const MaxImageBytes = 1 << 20

const (
	assetImageFolder    = "assets"
	assetDocumentFolder = "asset_documents"
)

// AssetInput carries the asset fields accepted on create and update.
type AssetInput struct {
	AssetName        string
	PurchasedDate    string
	DepreciationDate string
	Status           string
	// Images and Document are base64 payloads; they are only used on create.
	Images   []string
	Document string
}

// AssetService registers assets together with their media.
type AssetService struct {
	assets     repository.AssetRepository
	blobs      blob.Store
	dispatcher events.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo  repository.AssetRepository
	Blobs      blob.Store
	Dispatcher events.Dispatcher
	Clock      func() time.Time
	Logger     *zap.Logger
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		assets:     deps.AssetRepo,
		blobs:      deps.Blobs,
		dispatcher: deps.Dispatcher,
		now:        clockOrDefault(deps.Clock),
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create validates the input, uploads images and the optional document, and
// persists the asset. Every input check runs before the first upload. Any
// failure after an upload deletes what was uploaded before returning.
func (s *AssetService) Create(ctx context.Context, in AssetInput) (*domain.Asset, error) {
	fields, err := validateAssetFields(in, domain.CreationStatuses)
	if err != nil {
		return nil, err
	}
	for i, img := range in.Images {
		if blob.DecodedSize(img) > MaxImageBytes {
			return nil, apperrors.NewValidationError("One or more images exceed 1MB size limit", map[string]any{"index": i})
		}
	}

	uploaded := make([]domain.MediaRef, 0, len(in.Images))
	for _, img := range in.Images {
		ref, err := s.blobs.Upload(ctx, img, blob.UploadOptions{Folder: assetImageFolder, ResourceType: blob.ResourceImage})
		if err != nil {
			s.logger.Warn("asset image upload failed", zap.Int("uploaded", len(uploaded)), zap.Error(err))
			releaseBlobs(ctx, s.blobs, s.logger, "image upload failed", uploaded)
			return nil, apperrors.NewValidationError("Failed to upload images. Please check image formats", nil)
		}
		uploaded = append(uploaded, ref)
	}

	var document *domain.MediaRef
	if strings.TrimSpace(in.Document) != "" {
		ref, err := s.blobs.Upload(ctx, in.Document, blob.UploadOptions{Folder: assetDocumentFolder, ResourceType: blob.ResourceAuto})
		if err != nil {
			s.logger.Warn("asset document upload failed", zap.Error(err))
			releaseBlobs(ctx, s.blobs, s.logger, "document upload failed", uploaded)
			return nil, apperrors.NewValidationError("Failed to upload document. Supported formats: PDF, DOC, DOCX", nil)
		}
		document = &ref
	}

	asset := &domain.Asset{
		Name:             fields.name,
		PurchasedDate:    fields.purchased,
		DepreciationDate: fields.depreciation,
		Status:           fields.status,
		Pictures:         uploaded,
		Document:         document,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		s.logger.Error("asset persist failed; releasing uploads", zap.Error(err))
		releaseBlobs(ctx, s.blobs, s.logger, "asset persist failed", asset.Blobs())
		return nil, repoError("asset", err)
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventAssetCreated,
		SubjectID: asset.ID.Hex(),
		Payload: events.AssetCreatedPayload{
			AssetName: asset.Name,
			Status:    asset.Status,
			Images:    len(asset.Pictures),
		},
	})
	return asset, nil
}

// List returns every asset, newest first.
func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, repoError("asset", err)
	}
	return assets, nil
}

// Get returns the asset with id.
func (s *AssetService) Get(ctx context.Context, id string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("asset", err)
	}
	return asset, nil
}

// Update replaces name, dates and status. Media is left untouched.
func (s *AssetService) Update(ctx context.Context, id string, in AssetInput) (*domain.Asset, error) {
	fields, err := validateAssetFields(in, domain.UpdateStatuses)
	if err != nil {
		return nil, err
	}
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := asset.Status
	asset.Name = fields.name
	asset.PurchasedDate = fields.purchased
	asset.DepreciationDate = fields.depreciation
	asset.Status = fields.status
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, repoError("asset", err)
	}
	s.publishStatusChange(ctx, asset, oldStatus)
	return asset, nil
}

// SetStatus overwrites the status regardless of the current one.
func (s *AssetService) SetStatus(ctx context.Context, id string, status domain.AssetStatus) (*domain.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := asset.Status
	asset.Status = status
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, repoError("asset", err)
	}
	s.publishStatusChange(ctx, asset, oldStatus)
	return asset, nil
}

// Delete removes the asset and releases its media.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return repoError("asset", err)
	}
	releaseBlobs(ctx, s.blobs, s.logger, "asset deleted", asset.Blobs())
	return nil
}

func (s *AssetService) publishStatusChange(ctx context.Context, asset *domain.Asset, oldStatus domain.AssetStatus) {
	if oldStatus == asset.Status {
		return
	}
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventAssetStatusChanged,
		SubjectID: asset.ID.Hex(),
		Payload: events.AssetStatusChangedPayload{
			AssetName: asset.Name,
			OldStatus: oldStatus,
			NewStatus: asset.Status,
		},
	})
}

type assetFields struct {
	name         string
	purchased    time.Time
	depreciation time.Time
	status       domain.AssetStatus
}

func validateAssetFields(in AssetInput, allowed []domain.AssetStatus) (assetFields, error) {
	if missing := missingFields(
		"assetName", in.AssetName,
		"purchased_date", in.PurchasedDate,
		"depreciation_date", in.DepreciationDate,
		"status", in.Status,
	); len(missing) > 0 {
		return assetFields{}, apperrors.NewMissingFields(missing...)
	}

	status, ok := domain.ParseAssetStatus(in.Status, allowed)
	if !ok {
		names := make([]string, len(allowed))
		for i, st := range allowed {
			names[i] = string(st)
		}
		return assetFields{}, apperrors.NewValidationError(
			fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(names, ", ")),
			map[string]any{"allowed": names},
		)
	}

	purchased, err := ParseDate(in.PurchasedDate)
	if err != nil {
		return assetFields{}, apperrors.NewValidationError("Invalid purchase date format", nil)
	}
	depreciation, err := ParseDate(in.DepreciationDate)
	if err != nil {
		return assetFields{}, apperrors.NewValidationError("Invalid depreciation date format", nil)
	}
	if depreciation.Before(purchased) {
		return assetFields{}, apperrors.NewValidationError("Depreciation date cannot be earlier than purchase date", nil)
	}

	return assetFields{
		name:         strings.TrimSpace(in.AssetName),
		purchased:    purchased,
		depreciation: depreciation,
		status:       status,
	}, nil
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}
