package roles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docuvault/docuvault/internal/models"
)

// Repository defines persistence operations for roles. Get and GetByTitle
// return (nil, nil) when no role matches, so callers can distinguish
// "absent" from a store failure.
type Repository interface {
	Create(ctx context.Context, r *models.Role) (string, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	GetByTitle(ctx context.Context, title string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, role *models.Role) (string, error) {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	role.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, role); err != nil {
		return "", err
	}
	return role.ID, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByTitle(ctx context.Context, title string) (*models.Role, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Role, error) {
	var role models.Role
	if err := r.col.FindOne(ctx, filter).Decode(&role); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Role, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Role{}
	for cur.Next(ctx) {
		var role models.Role
		if err := cur.Decode(&role); err != nil {
			return nil, err
		}
		out = append(out, &role)
	}
	return out, cur.Err()
}
