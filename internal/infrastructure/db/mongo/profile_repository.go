package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

const profileCollection = "user_profiles"

// MongoProfileRepository stores cashier profiles keyed by identity id.
type MongoProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profileCollection)}
}

// mongoProfile uses the identity id as the document id, enforcing the
// one-profile-per-identity invariant at the store level.
type mongoProfile struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Role      string `bson:"role"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoProfileRepository) Insert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := mongoProfile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: createdAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.StoreError{Message: "profile already exists"}
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	// fetch back to return the stored row
	return r.FindByID(ctx, p.ID)
}

func (r *MongoProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProfileRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (mp *mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:        mp.ID,
		Name:      mp.Name,
		Email:     mp.Email,
		Role:      domain.Role(mp.Role),
		CreatedAt: unixToTime(mp.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
