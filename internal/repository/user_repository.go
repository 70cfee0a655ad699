package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/asset-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Repository[domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	*mongoRepository[domain.User, *domain.User]
}

// NewUserRepository returns a MongoDB-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{newMongoRepository[domain.User](db, CollectionUsers)}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

// NormalizeEmail is the canonical stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
