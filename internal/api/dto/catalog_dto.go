package dto

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

type CategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

type SubcategoryRequest struct {
	CategoryName    *string `json:"categoryName"`
	SubCategoryName *string `json:"subCategoryName"`
}

type ItemRequest struct {
	ItemName string `json:"itemName"`
}

type CategoryResponse struct {
	ID           string    `json:"id"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SubcategoryResponse struct {
	ID              string    `json:"id"`
	CategoryName    string    `json:"categoryName"`
	SubCategoryName string    `json:"subCategoryName"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ItemResponse struct {
	ID        string    `json:"id"`
	ItemName  string    `json:"itemName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID.Hex(), CategoryName: c.CategoryName, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func NewSubcategoryResponse(s *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:              s.ID.Hex(),
		CategoryName:    s.CategoryName,
		SubCategoryName: s.SubCategoryName,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func NewItemResponse(i *domain.Item) ItemResponse {
	return ItemResponse{ID: i.ID.Hex(), ItemName: i.ItemName, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt}
}

// MapList applies fn to each element in order.
func MapList[T, R any](in []T, fn func(*T) R) []R {
	out := make([]R, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}
