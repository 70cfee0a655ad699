package domain

// Category is a top-level asset classification.
type Category struct {
	Base         `bson:",inline"`
	CategoryName string `bson:"categoryName"`
}

// Subcategory refines a category; the pair is unique.
type Subcategory struct {
	Base            `bson:",inline"`
	CategoryName    string `bson:"categoryName"`
	SubCategoryName string `bson:"subCategoryName"`
}

// Item names a requestable equipment item.
type Item struct {
	Base     `bson:",inline"`
	ItemName string `bson:"itemName"`
}
