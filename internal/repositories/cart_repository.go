package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goshop/backend/internal/models"
)

// cartRepository implements per-user cart storage over MySQL
type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *cartRepository {
	return &cartRepository{
		db: db,
	}
}

// Add inserts a cart row or, when the (user_id, product_id) key already
// exists, accumulates the quantity onto the existing row
func (r *cartRepository) Add(ctx context.Context, userID, productID, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, productID, quantity); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// GetByUser retrieves a user's cart entries joined with the catalog
func (r *cartRepository) GetByUser(ctx context.Context, userID int) ([]models.CartEntry, error) {
	query := `
		SELECT ci.product_id, p.name, p.price_cents, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	defer rows.Close()

	entries := []models.CartEntry{}
	for rows.Next() {
		var entry models.CartEntry
		err := rows.Scan(
			&entry.ProductID,
			&entry.Name,
			&entry.PriceCents,
			&entry.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart entry: %w", err)
		}
		entry.SubtotalCents = entry.PriceCents * int64(entry.Quantity)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// UpdateQuantity sets the quantity of an existing cart row
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = ?
		WHERE user_id = ? AND product_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Remove deletes a cart row
func (r *cartRepository) Remove(ctx context.Context, userID, productID int) error {
	query := `DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Clear empties a user's cart
func (r *cartRepository) Clear(ctx context.Context, userID int) error {
	query := `DELETE FROM cart_items WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
