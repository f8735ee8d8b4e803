package services

import (
	"context"
	"testing"

	"github.com/goshop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductRepository is a mock implementation of ProductRepository
type mockProductRepository struct {
	product  *models.Product
	products []models.Product
	err      error
	updated  *models.Product
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	product.ID = 1
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, productID int) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	m.updated = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, productID int) error {
	return m.err
}

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.ProductRequest
		repo          *mockProductRepository
		validationErr bool
	}{
		{
			name: "success",
			req: &models.ProductRequest{
				Name:       "Mug",
				PriceCents: 1299,
				Stock:      10,
			},
			repo: &mockProductRepository{},
		},
		{
			name:          "missing name",
			req:           &models.ProductRequest{PriceCents: 1299},
			repo:          &mockProductRepository{},
			validationErr: true,
		},
		{
			name:          "negative price",
			req:           &models.ProductRequest{Name: "Mug", PriceCents: -1},
			repo:          &mockProductRepository{},
			validationErr: true,
		},
		{
			name:          "negative stock",
			req:           &models.ProductRequest{Name: "Mug", PriceCents: 1299, Stock: -5},
			repo:          &mockProductRepository{},
			validationErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProductService(tt.repo)

			product, err := svc.Create(context.Background(), tt.req)

			if tt.validationErr {
				assert.True(t, models.IsValidationError(err))
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, product.ID)
				assert.Equal(t, tt.req.Name, product.Name)
			}
		})
	}
}

func TestProductService_Get(t *testing.T) {
	stored := &models.Product{ID: 1, Name: "Mug", PriceCents: 1299}
	svc := NewProductService(&mockProductRepository{product: stored})

	product, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, stored, product)
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc := NewProductService(&mockProductRepository{err: models.ErrNotFound})

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductService_Update(t *testing.T) {
	stored := &models.Product{ID: 1, Name: "Mug", PriceCents: 1499}
	repo := &mockProductRepository{product: stored}
	svc := NewProductService(repo)

	product, err := svc.Update(context.Background(), 1, &models.ProductRequest{
		Name:       "Mug",
		PriceCents: 1499,
	})

	require.NoError(t, err)
	assert.Equal(t, stored, product)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 1, repo.updated.ID)
}

func TestProductService_List(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Mug"},
		{ID: 2, Name: "Poster"},
	}
	svc := NewProductService(&mockProductRepository{products: products})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc := NewProductService(&mockProductRepository{err: models.ErrNotFound})

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrNotFound)
}
