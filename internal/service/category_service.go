package service

import (
	"context"

	"vape-shop/internal/media"
	"vape-shop/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	List(ctx context.Context) ([]bson.M, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	deleter      media.Deleter
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, deleter media.Deleter, logger *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		deleter:      deleter,
		logger:       logger,
	}
}

func (s *categoryService) Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	delete(doc, "_id")
	return s.categoryRepo.Create(ctx, doc)
}

func (s *categoryService) List(ctx context.Context) ([]bson.M, error) {
	return s.categoryRepo.List(ctx)
}

// Update applies a partial update with upsert semantics: an identifier that
// matches nothing creates the category. Replaced-image references trigger
// cleanup and are stripped along with the identifier field.
func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	refs := extractOldImageRefs(fields)
	cleanupImages(ctx, s.deleter, s.logger, refs...)

	delete(fields, "_id")
	if len(fields) == 0 {
		return nil
	}

	return s.categoryRepo.Upsert(ctx, id, fields)
}
