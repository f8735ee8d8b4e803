package services

import (
	"context"

	"github.com/goshop/backend/internal/models"
)

// ProductRepository is the interface that wraps methods for products table
// data access
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *models.Product) error
	// GetByID retrieves a product by ID. Returns models.ErrNotFound when no
	// such product exists.
	GetByID(ctx context.Context, productID int) (*models.Product, error)
	// List retrieves all products.
	List(ctx context.Context) ([]models.Product, error)
	// Update replaces a product's editable fields. Returns
	// models.ErrNotFound when no such product exists.
	Update(ctx context.Context, product *models.Product) error
	// Delete removes a product. Returns models.ErrNotFound when no such
	// product exists.
	Delete(ctx context.Context, productID int) error
}

// productService implements catalog business logic
type productService struct {
	productRepo ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

// validateProductRequest rejects malformed product payloads
func validateProductRequest(req *models.ProductRequest) error {
	if req.Name == "" {
		return models.NewValidationError("product name is required")
	}
	if req.PriceCents < 0 {
		return models.NewValidationError("price cannot be negative")
	}
	if req.Stock < 0 {
		return models.NewValidationError("stock cannot be negative")
	}
	return nil
}

// Create adds a product to the catalog
func (s *productService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Get retrieves one product
func (s *productService) Get(ctx context.Context, productID int) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, productID)
}

// List retrieves the whole catalog
func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

// Update replaces a product's fields
func (s *productService) Update(ctx context.Context, productID int, req *models.ProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, productID)
}

// Delete removes a product from the catalog
func (s *productService) Delete(ctx context.Context, productID int) error {
	return s.productRepo.Delete(ctx, productID)
}
