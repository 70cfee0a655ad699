package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/asset-service/internal/domain"
)

// AssetRepository persists assets.
type AssetRepository = Repository[domain.Asset]

// PropertyRepository persists properties.
type PropertyRepository = Repository[domain.Property]

// NewAssetRepository returns a MongoDB-backed implementation.
func NewAssetRepository(db *mongo.Database) AssetRepository {
	return newMongoRepository[domain.Asset](db, CollectionAssets)
}

// NewPropertyRepository returns a MongoDB-backed implementation.
func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return newMongoRepository[domain.Property](db, CollectionProperties)
}
