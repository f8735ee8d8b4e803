package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goshop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupOrderTestRepository creates an order repository with a mock database
func setupOrderTestRepository(t *testing.T) (*orderRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewOrderRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestOrderRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupOrderTestRepository(t)
	defer cleanup()

	order := &models.Order{
		CustomerName:    "Alice",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St",
		Status:          models.OrderStatusPending,
		TotalCents:      4296,
		Items: []models.OrderItem{
			{ProductID: 2, ProductName: "Mug", UnitPriceCents: 1299, Quantity: 2},
			{ProductID: 5, ProductName: "Poster", UnitPriceCents: 999, Quantity: 2},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("Alice", "alice@example.com", "1 Main St", models.OrderStatusPending, int64(4296)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(10, 2, "Mug", int64(1299), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(10, 5, "Poster", int64(999), 2).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, 10, order.ID)
	assert.Equal(t, 10, order.Items[0].OrderID)
	assert.Equal(t, 1, order.Items[0].ID)
	assert.Equal(t, 2, order.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_RollbackOnItemError(t *testing.T) {
	repo, mock, cleanup := setupOrderTestRepository(t)
	defer cleanup()

	order := &models.Order{
		CustomerName:    "Alice",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St",
		Status:          models.OrderStatusPending,
		TotalCents:      1299,
		Items: []models.OrderItem{
			{ProductID: 2, ProductName: "Mug", UnitPriceCents: 1299, Quantity: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("Alice", "alice@example.com", "1 Main St", models.OrderStatusPending, int64(1299)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(10, 2, "Mug", int64(1299), 1).
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), order)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupOrderTestRepository(t)
	defer cleanup()

	createdAt := time.Now()
	orderRows := sqlmock.NewRows([]string{"id", "customer_name", "customer_email", "shipping_address", "status", "total_cents", "created_at"}).
		AddRow(10, "Alice", "alice@example.com", "1 Main St", "pending", 1299, createdAt)
	mock.ExpectQuery(`SELECT id, customer_name, customer_email, shipping_address, status, total_cents, created_at FROM orders`).
		WithArgs(10).
		WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "unit_price_cents", "quantity"}).
		AddRow(1, 10, 2, "Mug", 1299, 1)
	mock.ExpectQuery(`SELECT id, order_id, product_id, product_name, unit_price_cents, quantity FROM order_items`).
		WithArgs(10).
		WillReturnRows(itemRows)

	order, err := repo.GetByID(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 10, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Mug", order.Items[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupOrderTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, customer_name, customer_email, shipping_address, status, total_cents, created_at FROM orders`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_name", "customer_email", "shipping_address", "status", "total_cents", "created_at"}))

	order, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE orders`).
					WithArgs(models.OrderStatusPaid, 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE orders`).
					WithArgs(models.OrderStatusPaid, 10).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupOrderTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateStatus(context.Background(), 10, models.OrderStatusPaid)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupOrderTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM orders`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 10)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
