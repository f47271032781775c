// File: internal/category/service_test.go
package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCategoryRepository is a func-field mock of the Repository interface.
type MockCategoryRepository struct {
	CreateFunc     func(ctx context.Context, category *Category) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByNameFunc func(ctx context.Context, name string) (*Category, error)
	FindAllFunc    func(ctx context.Context) ([]Category, error)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]Category, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func TestCategoryService_Create_DerivesSlug(t *testing.T) {
	var created *Category
	mockRepo := &MockCategoryRepository{
		CreateFunc: func(ctx context.Context, category *Category) error {
			created = category
			return nil
		},
	}
	svc := NewService(mockRepo, zap.NewNop())

	result, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "  City Parks & Gardens  "})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "City Parks & Gardens", created.Name)
	assert.Equal(t, "city-parks-and-gardens", created.Slug)
	assert.Equal(t, created, result)
}

func TestCategoryService_Create_RepositoryFailure(t *testing.T) {
	mockRepo := &MockCategoryRepository{
		CreateFunc: func(ctx context.Context, category *Category) error {
			return errors.New("disk full")
		},
	}
	svc := NewService(mockRepo, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Parks"})
	require.Error(t, err)
}
