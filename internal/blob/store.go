// Package blob stores uploaded media and documents.
package blob

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/spec-kit/asset-service/internal/domain"
)

// ResourceType hints how the provider should treat an upload.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceAuto  ResourceType = "auto"
)

// UploadOptions controls where and how a payload is stored.
type UploadOptions struct {
	Folder       string
	ResourceType ResourceType
	// Width scales images down when positive.
	Width int
}

// Store uploads base64 payloads and deletes what it uploaded.
type Store interface {
	Upload(ctx context.Context, payload string, opts UploadOptions) (domain.MediaRef, error)
	Delete(ctx context.Context, ref domain.MediaRef) error
}

// ErrInvalidPayload is returned for payloads that are not base64 or data URIs.
var ErrInvalidPayload = errors.New("invalid base64 payload")

// DecodedSize estimates the byte size of a base64 payload or data URI
// without decoding it: ceil(len(b64) * 3 / 4).
func DecodedSize(payload string) int {
	data := payload
	if i := strings.IndexByte(payload, ','); i >= 0 {
		data = payload[i+1:]
	}
	return (len(data)*3 + 3) / 4
}

// Decode splits a data URI into its media type and bytes. A bare base64
// string yields an empty media type.
func Decode(payload string) (string, []byte, error) {
	mediaType := ""
	data := payload
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return "", nil, ErrInvalidPayload
		}
		meta := payload[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, ErrInvalidPayload
		}
		mediaType = strings.TrimSuffix(meta, ";base64")
		data = payload[comma+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil || len(raw) == 0 {
		return "", nil, ErrInvalidPayload
	}
	return mediaType, raw, nil
}
