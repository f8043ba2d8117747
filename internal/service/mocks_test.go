package service

import (
	"context"

	"vape-shop/internal/domain"
	"vape-shop/internal/media"
	"vape-shop/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories and collaborators for service tests

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, exists := m.users[user.Email]; exists {
		return primitive.NilObjectID, repository.ErrUserAlreadyExists
	}
	u := *user
	u.ID = primitive.NewObjectID()
	m.users[user.Email] = &u
	return u.ID, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type mockProductRepository struct {
	products map[primitive.ObjectID]*domain.Product

	updatedFields map[primitive.ObjectID]bson.M
	deleted       []primitive.ObjectID
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products:      make(map[primitive.ObjectID]*domain.Product),
		updatedFields: make(map[primitive.ObjectID]bson.M),
	}
}

func (m *mockProductRepository) add(product *domain.Product) primitive.ObjectID {
	id := primitive.NewObjectID()
	product.ID = id
	m.products[id] = product
	return id
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error) {
	return m.add(product), nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) List(ctx context.Context, query repository.ProductQuery) ([]domain.Product, int64, error) {
	products := []domain.Product{}
	for _, p := range m.products {
		products = append(products, *p)
	}
	return products, int64(len(products)), nil
}

func (m *mockProductRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	m.updatedFields[id] = fields
	return nil
}

func (m *mockProductRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	product.Status = status
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockCategoryRepository struct {
	upserts map[primitive.ObjectID]bson.M
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{upserts: make(map[primitive.ObjectID]bson.M)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]bson.M, error) {
	return []bson.M{}, nil
}

func (m *mockCategoryRepository) Upsert(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	m.upserts[id] = fields
	return nil
}

// mockDeleter records each batched cleanup call
type mockDeleter struct {
	calls  [][]string
	result media.DeletionResult
}

func (m *mockDeleter) DeleteImages(ctx context.Context, refs ...string) media.DeletionResult {
	m.calls = append(m.calls, refs)
	return m.result
}
