package repository

import (
	"context"
	"fmt"

	"vape-shop/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ColorRepository defines the interface for color data access
type ColorRepository interface {
	Create(ctx context.Context, color *domain.Color) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Color, error)
}

type colorRepository struct {
	coll *mongo.Collection
}

// NewColorRepository creates a new instance of ColorRepository
func NewColorRepository(db *mongo.Database) ColorRepository {
	return &colorRepository{coll: db.Collection("color")}
}

func (r *colorRepository) Create(ctx context.Context, color *domain.Color) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, color)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create color: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return id, nil
}

func (r *colorRepository) List(ctx context.Context) ([]domain.Color, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	defer cursor.Close(ctx)

	colors := []domain.Color{}
	if err := cursor.All(ctx, &colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}

	return colors, nil
}
