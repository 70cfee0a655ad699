package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/asset-service/internal/domain"
)

// Collection names.
const (
	CollectionUsers               = "users"
	CollectionAssets              = "assets"
	CollectionProperties          = "properties"
	CollectionCategories          = "categories"
	CollectionSubcategories       = "subcategories"
	CollectionItems               = "items"
	CollectionMaintenanceRequests = "maintenance_requests"
	CollectionEquipmentRequests   = "equipment_requests"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned for identifiers that are not valid ObjectIDs.
	ErrInvalidID = errors.New("invalid document id")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// Repository is the CRUD surface shared by every collection.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, doc *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

type document[T any] interface {
	*T
	domain.Document
}

type mongoRepository[T any, P document[T]] struct {
	coll *mongo.Collection
	now  func() time.Time
}

func newMongoRepository[T any, P document[T]](db *mongo.Database, name string) *mongoRepository[T, P] {
	return &mongoRepository[T, P]{coll: db.Collection(name), now: time.Now}
}

func (r *mongoRepository[T, P]) Create(ctx context.Context, doc *T) error {
	P(doc).Stamp(r.now().UTC())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	return nil
}

// Update replaces the stored document in a single write.
func (r *mongoRepository[T, P]) Update(ctx context.Context, doc *T) error {
	p := P(doc)
	p.Stamp(r.now().UTC())
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.DocumentID()}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// List returns every document, newest first.
func (r *mongoRepository[T, P]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *mongoRepository[T, P]) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository[T, P]) findOne(ctx context.Context, filter any) (*T, error) {
	var out T
	if err := r.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// ParseID converts a hex identifier into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
