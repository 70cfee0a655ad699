package blob

import (
	"testing"

	"github.com/spec-kit/asset-service/internal/domain"
)

func TestDestroyParamsResourceType(t *testing.T) {
	tests := []struct {
		name string
		ref  domain.MediaRef
		want string
	}{
		{name: "image", ref: domain.MediaRef{PublicID: "assets/a", ResourceType: "image"}, want: "image"},
		{name: "raw document", ref: domain.MediaRef{PublicID: "asset_documents/b.pdf", ResourceType: "raw"}, want: "raw"},
		{name: "legacy ref", ref: domain.MediaRef{PublicID: "avatars/c"}, want: "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := destroyParams(tt.ref)
			if params.PublicID != tt.ref.PublicID || params.ResourceType != tt.want {
				t.Fatalf("destroyParams = %+v, want resource type %q", params, tt.want)
			}
		})
	}
}
