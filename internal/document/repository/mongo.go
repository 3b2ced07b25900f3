package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docuvault/docuvault/internal/document"
	"github.com/docuvault/docuvault/pkg/logger"
)

// MongoRepo implements a MongoDB-backed document store. Titles are checked
// for uniqueness by the service with a read-before-write probe, matching the
// original data model; there is deliberately no unique index on title, so a
// race between two concurrent creates with the same title can slip through.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// index createdAt for the reverse-chronological default sort; the repo
	// still works without it, just with slower sorts
	idx := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
		logger.Warnf("failed to create createdAt index on %s: %v", col.Name(), err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, doc *document.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) GetByTitle(ctx context.Context, title string) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, bson.M{"title": title}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Search(ctx context.Context, params document.SearchParams, page document.Pagination) ([]*document.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Offset)
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	return m.find(ctx, params.Filter(), opts)
}

func (m *MongoRepo) ListByRole(ctx context.Context, roleID string, limit int64) ([]*document.Document, error) {
	return m.findLimited(ctx, bson.M{"role": roleID}, limit)
}

func (m *MongoRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]*document.Document, error) {
	return m.findLimited(ctx, bson.M{"userId": userID}, limit)
}

func (m *MongoRepo) findLimited(ctx context.Context, filter bson.M, limit int64) ([]*document.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return m.find(ctx, filter, opts)
}

func (m *MongoRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*document.Document, error) {
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Update(ctx context.Context, id string, patch document.Patch) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range patch {
		switch k {
		case "title", "content", "role":
			set[k] = v
		}
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return document.ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return document.ErrNotFound
	}
	return nil
}
