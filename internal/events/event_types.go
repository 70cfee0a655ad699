package events

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventAssetCreated         EventType = "asset_created"
	EventAssetStatusChanged   EventType = "asset_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	Kind        domain.RequestKind `json:"kind"`
	Title       string             `json:"title"`
	RequesterID string             `json:"requester_id"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	Kind        domain.RequestKind   `json:"kind"`
	Title       string               `json:"title"`
	RequesterID string               `json:"requester_id"`
	OldStatus   domain.RequestStatus `json:"old_status"`
	NewStatus   domain.RequestStatus `json:"new_status"`
}

// AssetCreatedPayload payload.
type AssetCreatedPayload struct {
	AssetName string             `json:"asset_name"`
	Status    domain.AssetStatus `json:"status"`
	Images    int                `json:"images"`
}

// AssetStatusChangedPayload payload.
type AssetStatusChangedPayload struct {
	AssetName string             `json:"asset_name"`
	OldStatus domain.AssetStatus `json:"old_status"`
	NewStatus domain.AssetStatus `json:"new_status"`
}
