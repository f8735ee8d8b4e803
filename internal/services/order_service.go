package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/goshop/backend/internal/models"
	"github.com/goshop/backend/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// OrderRepository is the interface that wraps methods for orders table data
// access
type OrderRepository interface {
	// Create inserts an order and its items atomically.
	Create(ctx context.Context, order *models.Order) error
	// GetByID retrieves an order with its items. Returns models.ErrNotFound
	// when no such order exists.
	GetByID(ctx context.Context, orderID int) (*models.Order, error)
	// List retrieves all orders with their items.
	List(ctx context.Context) ([]models.Order, error)
	// UpdateStatus sets an order's status. Returns models.ErrNotFound when
	// no such order exists.
	UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error
	// Delete removes an order and its items. Returns models.ErrNotFound
	// when no such order exists.
	Delete(ctx context.Context, orderID int) error
}

// TaskEnqueuer puts background tasks on the queue. *asynq.Client satisfies
// it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// orderService implements checkout and order management business logic
type orderService struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	enqueuer    TaskEnqueuer
	logger      *zap.Logger
}

// NewOrderService creates a new order service. enqueuer may be nil, in
// which case no confirmation emails are queued.
func NewOrderService(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	enqueuer TaskEnqueuer,
	logger *zap.Logger,
) *orderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		enqueuer:    enqueuer,
		logger:      logger,
	}
}

// Create places an order. Item names and prices are snapshotted from the
// catalog and the total is computed server-side; nothing from the request
// besides product IDs and quantities reaches the stored amounts.
func (s *orderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if req.CustomerName == "" {
		return nil, models.NewValidationError("customer name is required")
	}
	if !emailRegex.MatchString(req.CustomerEmail) {
		return nil, models.NewValidationError("invalid customer email")
	}
	if req.ShippingAddress == "" {
		return nil, models.NewValidationError("shipping address is required")
	}
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("order must contain at least one item")
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		Items:           make([]models.OrderItem, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, models.NewValidationError("item quantity must be at least 1")
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.NewValidationError(fmt.Sprintf("unknown product %d", item.ProductID))
			}
			return nil, err
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       item.Quantity,
		})
		order.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, order)

	return order, nil
}

// Get retrieves one order
func (s *orderService) Get(ctx context.Context, orderID int) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// List retrieves all orders
func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateStatus moves an order to a new status. Shipped and cancelled orders
// are terminal and cannot change again.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusPaid,
		models.OrderStatusShipped, models.OrderStatusCancelled:
	default:
		return nil, models.NewValidationError("invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusCancelled {
		return nil, models.NewValidationError(fmt.Sprintf("order is already %s", order.Status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// Delete removes an order
func (s *orderService) Delete(ctx context.Context, orderID int) error {
	return s.orderRepo.Delete(ctx, orderID)
}

// enqueueConfirmation queues the confirmation email. The order is already
// placed at this point, so a queue failure is logged and not surfaced.
func (s *orderService) enqueueConfirmation(ctx context.Context, order *models.Order) {
	if s.enqueuer == nil {
		return
	}

	task, err := tasks.NewOrderConfirmationTask(tasks.OrderConfirmationPayload{
		Email:        order.CustomerEmail,
		CustomerName: order.CustomerName,
		OrderID:      order.ID,
		TotalCents:   order.TotalCents,
	})
	if err != nil {
		s.logger.Warn("failed to build order confirmation task", zap.Int("orderId", order.ID), zap.Error(err))
		return
	}

	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		s.logger.Warn("failed to enqueue order confirmation", zap.Int("orderId", order.ID), zap.Error(err))
	}
}
