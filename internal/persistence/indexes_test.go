package persistence

import (
	"testing"

	"github.com/spec-kit/asset-service/internal/repository"
)

func TestIndexSpecsUniqueConstraints(t *testing.T) {
	want := map[string]bool{
		repository.CollectionUsers:         false,
		repository.CollectionCategories:    false,
		repository.CollectionSubcategories: false,
		repository.CollectionItems:         false,
	}

	for _, spec := range indexSpecs() {
		if spec.model.Options == nil || spec.model.Options.Unique == nil || !*spec.model.Options.Unique {
			continue
		}
		if _, ok := want[spec.collection]; !ok {
			t.Errorf("unexpected unique index on %s", spec.collection)
			continue
		}
		want[spec.collection] = true
	}

	for collection, found := range want {
		if !found {
			t.Errorf("missing unique index on %s", collection)
		}
	}
}
