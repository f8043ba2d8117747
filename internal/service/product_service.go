package service

import (
	"context"
	"time"

	"vape-shop/internal/domain"
	"vape-shop/internal/media"
	"vape-shop/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context, query repository.ProductQuery) ([]domain.Product, repository.Pagination, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	ToggleStatus(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productService struct {
	productRepo repository.ProductRepository
	deleter     media.Deleter
	logger      *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, deleter media.Deleter, logger *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		deleter:     deleter,
		logger:      logger,
	}
}

// Create inserts a product, stamping the creation time and defaulting the
// status to active when the payload carries none.
func (s *productService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Status == "" {
		product.Status = domain.StatusActive
	}
	product.CreatedAt = time.Now()

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	return product, nil
}

// List returns one page of matching products with pagination metadata
func (s *productService) List(ctx context.Context, query repository.ProductQuery) ([]domain.Product, repository.Pagination, error) {
	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, repository.Pagination{}, err
	}

	return products, query.Paginate(total), nil
}

// Get retrieves a single product
func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ToggleStatus flips the product between active and inactive and returns the
// post-update document.
func (s *productService) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := domain.StatusActive
	if product.Status == domain.StatusActive {
		newStatus = domain.StatusInactive
	}

	return s.productRepo.UpdateStatus(ctx, id, newStatus)
}

// Update applies a partial update. Replaced-image references in the payload
// trigger cleanup and are stripped, as is any identifier field; the update
// never upserts.
func (s *productService) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	refs := extractOldImageRefs(fields)
	cleanupImages(ctx, s.deleter, s.logger, refs...)

	delete(fields, "_id")
	if len(fields) == 0 {
		return nil
	}

	return s.productRepo.UpdateFields(ctx, id, fields)
}

// Delete removes a product after cleaning up its hosted images. The single
// image and the image collection are cleaned in sequence; only then is the
// record deleted. A crash between the steps leaves an orphan on one side, an
// accepted inconsistency window.
func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" {
		cleanupImages(ctx, s.deleter, s.logger, product.Image)
	}
	if len(product.Images) > 0 {
		cleanupImages(ctx, s.deleter, s.logger, product.Images...)
	}

	return s.productRepo.Delete(ctx, id)
}
