package domain

import (
	"strings"
	"time"
)

// AssetStatus enumerates lifecycle states for assets.
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "active"
	AssetStatusInactive    AssetStatus = "inactive"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusDeprecated  AssetStatus = "deprecated"
	AssetStatusDisposed    AssetStatus = "disposed"
)

// CreationStatuses may be set when an asset is first registered.
var CreationStatuses = []AssetStatus{
	AssetStatusActive,
	AssetStatusInactive,
	AssetStatusMaintenance,
	AssetStatusDeprecated,
}

// UpdateStatuses may be set on a full asset update.
var UpdateStatuses = append(append([]AssetStatus{}, CreationStatuses...), AssetStatusDisposed)

// ParseAssetStatus normalizes s and checks it against allowed.
func ParseAssetStatus(s string, allowed []AssetStatus) (AssetStatus, bool) {
	candidate := AssetStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range allowed {
		if status == candidate {
			return candidate, true
		}
	}
	return "", false
}

// Asset is a tracked physical item with media attachments.
type Asset struct {
	Base             `bson:",inline"`
	Name             string      `bson:"assetName"`
	PurchasedDate    time.Time   `bson:"purchased_date"`
	DepreciationDate time.Time   `bson:"depreciation_date"`
	Status           AssetStatus `bson:"status"`
	Pictures         []MediaRef  `bson:"asset_pictures"`
	Document         *MediaRef   `bson:"asset_documents,omitempty"`
}

// Blobs returns every stored media reference of the asset.
func (a *Asset) Blobs() []MediaRef {
	refs := append([]MediaRef{}, a.Pictures...)
	if a.Document != nil {
		refs = append(refs, *a.Document)
	}
	return refs
}
