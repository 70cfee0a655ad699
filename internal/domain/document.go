package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every aggregate persisted in the document store.
type Document interface {
	DocumentID() primitive.ObjectID
	Stamp(now time.Time)
}

// Base carries the identity and timestamps shared by stored documents.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// DocumentID returns the document identifier.
func (b *Base) DocumentID() primitive.ObjectID {
	return b.ID
}

// Stamp assigns an id on first write and refreshes timestamps.
func (b *Base) Stamp(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// MediaRef points at a stored blob.
type MediaRef struct {
	PublicID string `bson:"public_id"`
	URL      string `bson:"url"`
	// ResourceType is the provider's storage class, needed to delete non-image blobs.
	ResourceType string `bson:"resource_type,omitempty"`
}
