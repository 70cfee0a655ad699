package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/asset-service/internal/domain"
)

// MaintenanceRequestRepository persists maintenance requests.
type MaintenanceRequestRepository = Repository[domain.MaintenanceRequest]

// EquipmentRequestRepository persists equipment requests.
type EquipmentRequestRepository = Repository[domain.EquipmentRequest]

func NewMaintenanceRequestRepository(db *mongo.Database) MaintenanceRequestRepository {
	return newMongoRepository[domain.MaintenanceRequest](db, CollectionMaintenanceRequests)
}

func NewEquipmentRequestRepository(db *mongo.Database) EquipmentRequestRepository {
	return newMongoRepository[domain.EquipmentRequest](db, CollectionEquipmentRequests)
}
