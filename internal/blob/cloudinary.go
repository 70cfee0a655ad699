package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/domain"
)

// CloudinaryStore keeps blobs in Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from account credentials.
func NewCloudinaryStore(cfg config.BlobConfig) (*CloudinaryStore, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, payload string, opts UploadOptions) (domain.MediaRef, error) {
	params := uploader.UploadParams{
		Folder:       opts.Folder,
		ResourceType: string(opts.ResourceType),
	}
	if opts.Width > 0 {
		params.Transformation = fmt.Sprintf("w_%d,c_scale", opts.Width)
	}

	res, err := s.cld.Upload.Upload(ctx, payload, params)
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return domain.MediaRef{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return domain.MediaRef{PublicID: res.PublicID, URL: res.SecureURL, ResourceType: res.ResourceType}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, ref domain.MediaRef) error {
	res, err := s.cld.Upload.Destroy(ctx, destroyParams(ref))
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", ref.PublicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", ref.PublicID, res.Error.Message)
	}
	return nil
}

// Refs stored before the resource type was recorded are images.
func destroyParams(ref domain.MediaRef) uploader.DestroyParams {
	resourceType := ref.ResourceType
	if resourceType == "" {
		resourceType = string(ResourceImage)
	}
	return uploader.DestroyParams{PublicID: ref.PublicID, ResourceType: resourceType}
}
