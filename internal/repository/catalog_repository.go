package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/asset-service/internal/domain"
)

// CategoryRepository persists categories; categoryName is unique.
type CategoryRepository = Repository[domain.Category]

// SubcategoryRepository persists subcategories; the name pair is unique.
type SubcategoryRepository = Repository[domain.Subcategory]

// ItemRepository persists items; itemName is unique.
type ItemRepository = Repository[domain.Item]

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return newMongoRepository[domain.Category](db, CollectionCategories)
}

func NewSubcategoryRepository(db *mongo.Database) SubcategoryRepository {
	return newMongoRepository[domain.Subcategory](db, CollectionSubcategories)
}

func NewItemRepository(db *mongo.Database) ItemRepository {
	return newMongoRepository[domain.Item](db, CollectionItems)
}
