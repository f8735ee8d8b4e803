package services

import (
	"context"
	"errors"

	"github.com/goshop/backend/internal/models"
)

// CartRepository is the interface that wraps methods for cart_items table
// data access
type CartRepository interface {
	// Add inserts a cart row or accumulates quantity onto an existing one.
	Add(ctx context.Context, userID, productID, quantity int) error
	// GetByUser retrieves a user's cart entries joined with the catalog.
	GetByUser(ctx context.Context, userID int) ([]models.CartEntry, error)
	// UpdateQuantity sets the quantity of an existing cart row. Returns
	// models.ErrNotFound when the product is not in the cart.
	UpdateQuantity(ctx context.Context, userID, productID, quantity int) error
	// Remove deletes a cart row. Returns models.ErrNotFound when the
	// product is not in the cart.
	Remove(ctx context.Context, userID, productID int) error
	// Clear empties a user's cart.
	Clear(ctx context.Context, userID int) error
}

// cartService implements shopping cart business logic
type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add puts a product into the user's cart, accumulating quantity when the
// product is already there
func (s *cartService) Add(ctx context.Context, userID int, req *models.CartItemRequest) error {
	if req.Quantity < 1 {
		return models.NewValidationError("quantity must be at least 1")
	}

	// Reject unknown products up front rather than failing on the foreign key
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewValidationError("unknown product")
		}
		return err
	}

	return s.cartRepo.Add(ctx, userID, req.ProductID, req.Quantity)
}

// Get returns the user's cart with per-line subtotals and the cart total
func (s *cartService) Get(ctx context.Context, userID int) (*models.Cart, error) {
	entries, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, entry := range entries {
		total += entry.SubtotalCents
	}

	return &models.Cart{
		Items:      entries,
		TotalCents: total,
	}, nil
}

// Update sets the quantity of a product already in the cart
func (s *cartService) Update(ctx context.Context, userID int, req *models.CartItemRequest) error {
	if req.Quantity < 1 {
		return models.NewValidationError("quantity must be at least 1")
	}

	return s.cartRepo.UpdateQuantity(ctx, userID, req.ProductID, req.Quantity)
}

// Remove takes a product out of the cart
func (s *cartService) Remove(ctx context.Context, userID, productID int) error {
	return s.cartRepo.Remove(ctx, userID, productID)
}
