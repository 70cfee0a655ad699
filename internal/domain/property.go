package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Property is a flat or unit with assets assigned to it.
type Property struct {
	Base            `bson:",inline"`
	CategoryName    string            `bson:"categoryName"`
	SubCategoryName string            `bson:"subCategoryName"`
	FlatNumber      string            `bson:"flatNumber"`
	AssignedAssets  []AssetAssignment `bson:"assign_assets"`
}

// AssetAssignment links an asset to a property.
type AssetAssignment struct {
	AssetID primitive.ObjectID `bson:"assetId"`
}
