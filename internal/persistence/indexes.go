package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/repository"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func indexSpecs() []indexSpec {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetName(name)
	}
	byCreatedAt := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}

	return []indexSpec{
		{repository.CollectionUsers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique("uniq_email")}},
		{repository.CollectionCategories, mongo.IndexModel{Keys: bson.D{{Key: "categoryName", Value: 1}}, Options: unique("uniq_category_name")}},
		{repository.CollectionSubcategories, mongo.IndexModel{
			Keys:    bson.D{{Key: "categoryName", Value: 1}, {Key: "subCategoryName", Value: 1}},
			Options: unique("uniq_category_subcategory"),
		}},
		{repository.CollectionItems, mongo.IndexModel{Keys: bson.D{{Key: "itemName", Value: 1}}, Options: unique("uniq_item_name")}},
		{repository.CollectionAssets, byCreatedAt},
		{repository.CollectionProperties, byCreatedAt},
		{repository.CollectionMaintenanceRequests, byCreatedAt},
		{repository.CollectionEquipmentRequests, byCreatedAt},
	}
}

// EnsureIndexes creates the unique and sort indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no mongo database available; skipping indexes")
		return nil
	}

	specs := indexSpecs()
	for _, spec := range specs {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
		logger.Debug("index ensured", zap.String("collection", spec.collection), zap.String("index", name))
	}

	logger.Info("indexes ensured", zap.Int("count", len(specs)))
	return nil
}
