package domain

// RequestStatus tracks a service request through its lifecycle.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

// RequestKind distinguishes the two service request collections.
type RequestKind string

const (
	RequestKindMaintenance RequestKind = "maintenance"
	RequestKindEquipment   RequestKind = "equipment"
)

// ServiceRequest is the shape shared by maintenance and equipment requests.
type ServiceRequest interface {
	Document
	Kind() RequestKind
	Requester() string
	CurrentStatus() RequestStatus
	SetStatus(RequestStatus)
}

// MaintenanceRequest asks for a service on a property.
type MaintenanceRequest struct {
	Base         `bson:",inline"`
	ServiceName  string        `bson:"serviceName"`
	IssueDetails string        `bson:"issueDetails"`
	RequestDate  string        `bson:"requestDate"`
	PropertyID   string        `bson:"property_id"`
	UserID       string        `bson:"user_id"`
	Status       RequestStatus `bson:"status"`
}

func (r *MaintenanceRequest) Kind() RequestKind              { return RequestKindMaintenance }
func (r *MaintenanceRequest) Requester() string              { return r.UserID }
func (r *MaintenanceRequest) CurrentStatus() RequestStatus   { return r.Status }
func (r *MaintenanceRequest) SetStatus(status RequestStatus) { r.Status = status }

// EquipmentRequest asks for an item to be provided to a property.
type EquipmentRequest struct {
	Base         `bson:",inline"`
	ItemName     string        `bson:"itemName"`
	IssueDetails string        `bson:"issueDetails,omitempty"`
	RequestDate  string        `bson:"requestDate"`
	PropertyID   string        `bson:"property_id"`
	UserID       string        `bson:"user_id"`
	Status       RequestStatus `bson:"status"`
}

func (r *EquipmentRequest) Kind() RequestKind              { return RequestKindEquipment }
func (r *EquipmentRequest) Requester() string              { return r.UserID }
func (r *EquipmentRequest) CurrentStatus() RequestStatus   { return r.Status }
func (r *EquipmentRequest) SetStatus(status RequestStatus) { r.Status = status }
