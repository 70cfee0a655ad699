package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/asset-service/internal/domain"
)

// LocalStore writes blobs below a directory served as static files.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates root if needed.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory blobs are written to.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Upload(ctx context.Context, payload string, opts UploadOptions) (domain.MediaRef, error) {
	if err := ctx.Err(); err != nil {
		return domain.MediaRef{}, err
	}
	mediaType, raw, err := Decode(payload)
	if err != nil {
		return domain.MediaRef{}, err
	}
	if opts.ResourceType == ResourceImage && mediaType != "" && !strings.HasPrefix(mediaType, "image/") {
		return domain.MediaRef{}, fmt.Errorf("unsupported image type %q", mediaType)
	}

	folder := filepath.Clean("/" + opts.Folder)[1:]
	if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
		return domain.MediaRef{}, err
	}

	publicID := path.Join(filepath.ToSlash(folder), uuid.NewString()+extension(mediaType))
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(publicID)), raw, 0o644); err != nil {
		return domain.MediaRef{}, err
	}
	return domain.MediaRef{PublicID: publicID, URL: s.baseURL + "/" + publicID, ResourceType: string(opts.ResourceType)}, nil
}

// Delete removes the blob; a missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref domain.MediaRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Clean("/" + filepath.FromSlash(ref.PublicID))
	err := os.Remove(filepath.Join(s.root, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func extension(mediaType string) string {
	if mediaType == "" {
		return ""
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
