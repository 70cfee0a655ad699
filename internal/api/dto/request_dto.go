package dto

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

// MaintenanceRequestBody creates or edits a maintenance request.
type MaintenanceRequestBody struct {
	ServiceName  *string `json:"serviceName"`
	IssueDetails *string `json:"issueDetails"`
	RequestDate  *string `json:"requestDate"`
	PropertyID   *string `json:"property_id"`
	UserID       *string `json:"user_id"`
	Status       *string `json:"status"`
}

// EquipmentRequestBody creates or edits an equipment request.
type EquipmentRequestBody struct {
	ItemName     *string `json:"itemName"`
	IssueDetails *string `json:"issueDetails"`
	RequestDate  *string `json:"requestDate"`
	PropertyID   *string `json:"property_id"`
	UserID       *string `json:"user_id"`
	Status       *string `json:"status"`
}

type MaintenanceResponse struct {
	ID           string               `json:"id"`
	ServiceName  string               `json:"serviceName"`
	IssueDetails string               `json:"issueDetails"`
	RequestDate  string               `json:"requestDate"`
	PropertyID   string               `json:"property_id"`
	UserID       string               `json:"user_id"`
	Status       domain.RequestStatus `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type EquipmentResponse struct {
	ID           string               `json:"id"`
	ItemName     string               `json:"itemName"`
	IssueDetails string               `json:"issueDetails,omitempty"`
	RequestDate  string               `json:"requestDate"`
	PropertyID   string               `json:"property_id"`
	UserID       string               `json:"user_id"`
	Status       domain.RequestStatus `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func NewMaintenanceResponse(r *domain.MaintenanceRequest) MaintenanceResponse {
	return MaintenanceResponse{
		ID:           r.ID.Hex(),
		ServiceName:  r.ServiceName,
		IssueDetails: r.IssueDetails,
		RequestDate:  r.RequestDate,
		PropertyID:   r.PropertyID,
		UserID:       r.UserID,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewEquipmentResponse(r *domain.EquipmentRequest) EquipmentResponse {
	return EquipmentResponse{
		ID:           r.ID.Hex(),
		ItemName:     r.ItemName,
		IssueDetails: r.IssueDetails,
		RequestDate:  r.RequestDate,
		PropertyID:   r.PropertyID,
		UserID:       r.UserID,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
