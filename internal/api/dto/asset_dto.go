package dto

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

// AssetRequest is the create and update payload. Images and the document are
// base64 strings or data URIs and only read on create.
type AssetRequest struct {
	AssetName        string   `json:"assetName"`
	PurchasedDate    string   `json:"purchased_date"`
	DepreciationDate string   `json:"depreciation_date"`
	Status           string   `json:"status"`
	Images           []string `json:"asset_pictures"`
	Document         string   `json:"asset_documents"`
}

// AssetCreatedResponse summarizes a freshly registered asset.
type AssetCreatedResponse struct {
	ID               string             `json:"id"`
	AssetName        string             `json:"assetName"`
	Status           domain.AssetStatus `json:"status"`
	PurchasedDate    time.Time          `json:"purchased_date"`
	DepreciationDate time.Time          `json:"depreciation_date"`
	Images           []string           `json:"images"`
	Document         *string            `json:"document"`
}

// NewAssetCreatedResponse renders media as plain URLs.
func NewAssetCreatedResponse(a *domain.Asset) AssetCreatedResponse {
	resp := AssetCreatedResponse{
		ID:               a.ID.Hex(),
		AssetName:        a.Name,
		Status:           a.Status,
		PurchasedDate:    a.PurchasedDate,
		DepreciationDate: a.DepreciationDate,
		Images:           make([]string, 0, len(a.Pictures)),
	}
	for _, p := range a.Pictures {
		resp.Images = append(resp.Images, p.URL)
	}
	if a.Document != nil {
		resp.Document = &a.Document.URL
	}
	return resp
}

// MediaResponse is a stored blob reference.
type MediaResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// AssetResponse is the full view of an asset.
type AssetResponse struct {
	ID               string             `json:"id"`
	AssetName        string             `json:"assetName"`
	PurchasedDate    time.Time          `json:"purchased_date"`
	DepreciationDate time.Time          `json:"depreciation_date"`
	Status           domain.AssetStatus `json:"status"`
	Pictures         []MediaResponse    `json:"asset_pictures"`
	Document         *MediaResponse     `json:"asset_documents"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func NewAssetResponse(a *domain.Asset) AssetResponse {
	resp := AssetResponse{
		ID:               a.ID.Hex(),
		AssetName:        a.Name,
		PurchasedDate:    a.PurchasedDate,
		DepreciationDate: a.DepreciationDate,
		Status:           a.Status,
		Pictures:         make([]MediaResponse, 0, len(a.Pictures)),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	for _, p := range a.Pictures {
		resp.Pictures = append(resp.Pictures, MediaResponse{PublicID: p.PublicID, URL: p.URL})
	}
	if a.Document != nil {
		doc := MediaResponse{PublicID: a.Document.PublicID, URL: a.Document.URL}
		resp.Document = &doc
	}
	return resp
}

func NewAssetList(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, NewAssetResponse(&assets[i]))
	}
	return out
}
