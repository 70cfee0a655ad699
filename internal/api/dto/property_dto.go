package dto

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

// PropertyRequest creates or edits a property; omitted fields are kept on edit.
type PropertyRequest struct {
	CategoryName    *string   `json:"categoryName"`
	SubCategoryName *string   `json:"subCategoryName"`
	FlatNumber      *string   `json:"flatNumber"`
	AssignAssets    *[]string `json:"assign_assets"`
}

type AssetAssignmentResponse struct {
	AssetID string `json:"assetId"`
}

type PropertyResponse struct {
	ID              string                    `json:"id"`
	CategoryName    string                    `json:"categoryName"`
	SubCategoryName string                    `json:"subCategoryName"`
	FlatNumber      string                    `json:"flatNumber"`
	AssignAssets    []AssetAssignmentResponse `json:"assign_assets"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

func NewPropertyResponse(p *domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:              p.ID.Hex(),
		CategoryName:    p.CategoryName,
		SubCategoryName: p.SubCategoryName,
		FlatNumber:      p.FlatNumber,
		AssignAssets:    make([]AssetAssignmentResponse, 0, len(p.AssignedAssets)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, a := range p.AssignedAssets {
		resp.AssignAssets = append(resp.AssignAssets, AssetAssignmentResponse{AssetID: a.AssetID.Hex()})
	}
	return resp
}
