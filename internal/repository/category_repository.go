package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// Categories carry arbitrary attributes beyond name and image, so this
// repository works with open documents rather than a fixed struct.
type CategoryRepository interface {
	Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	List(ctx context.Context) ([]bson.M, error)
	Upsert(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

type categoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{coll: db.Collection("category")}
}

// Create inserts a new category document
func (r *categoryRepository) Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create category: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return id, nil
}

// List retrieves all category documents
func (r *categoryRepository) List(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []bson.M{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// Upsert applies a partial $set update, inserting a new document when the
// identifier matches nothing.
func (r *categoryRepository) Upsert(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}

	return nil
}
