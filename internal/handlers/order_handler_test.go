package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	authmw "github.com/goshop/backend/internal/auth/middleware"
	"github.com/goshop/backend/internal/auth/service"
	"github.com/goshop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockOrderService is a mock implementation of OrderService
type mockOrderService struct {
	order  *models.Order
	orders []models.Order
	err    error
}

func (m *mockOrderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockOrderService) Get(ctx context.Context, orderID int) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockOrderService) List(ctx context.Context) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockOrderService) Delete(ctx context.Context, orderID int) error {
	return m.err
}

// setupOrderRouter mounts the order routes with a real admin gate
func setupOrderRouter(svc OrderService) (chi.Router, *service.TokenGenerator) {
	logger := zap.NewNop()
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	handler := NewOrderHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, authmw.RoleMiddleware(tg, nil, "admin"))
	return r, tg
}

func TestOrderHandler_Create_PublicCheckout(t *testing.T) {
	svc := &mockOrderService{order: &models.Order{
		ID:         10,
		Status:     models.OrderStatusPending,
		TotalCents: 1299,
	}}
	r, _ := setupOrderRouter(svc)

	// No Authorization header: checkout works for anonymous customers
	req := httptest.NewRequest(http.MethodPost, "/orders/",
		strings.NewReader(`{"customerName":"Alice","customerEmail":"alice@example.com","shippingAddress":"1 Main St","items":[{"productId":2,"quantity":1}]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 10, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestOrderHandler_Create_ValidationFailure(t *testing.T) {
	svc := &mockOrderService{err: models.NewValidationError("order must contain at least one item")}
	r, _ := setupOrderRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/orders/",
		strings.NewReader(`{"customerName":"Alice","customerEmail":"alice@example.com","shippingAddress":"1 Main St","items":[]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_List_RequiresAdmin(t *testing.T) {
	svc := &mockOrderService{orders: []models.Order{{ID: 10}}}
	r, tg := setupOrderRouter(svc)

	adminToken, err := tg.Generate(1, "admin")
	require.NoError(t, err)
	userToken, err := tg.Generate(2, "user")
	require.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		expectedCode int
	}{
		{name: "admin", token: adminToken, expectedCode: http.StatusOK},
		{name: "plain user", token: userToken, expectedCode: http.StatusForbidden},
		{name: "anonymous", token: "", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestOrderHandler_Update_TerminalStatus(t *testing.T) {
	svc := &mockOrderService{err: models.NewValidationError("order is already shipped")}
	r, tg := setupOrderRouter(svc)

	adminToken, err := tg.Generate(1, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/orders/10",
		strings.NewReader(`{"status":"paid"}`))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already shipped")
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	svc := &mockOrderService{err: models.ErrNotFound}
	r, tg := setupOrderRouter(svc)

	adminToken, err := tg.Generate(1, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders/99", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
