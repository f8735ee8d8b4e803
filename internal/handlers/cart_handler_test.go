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

// mockCartService is a mock implementation of CartService
type mockCartService struct {
	cart       *models.Cart
	err        error
	lastUserID int
}

func (m *mockCartService) Add(ctx context.Context, userID int, req *models.CartItemRequest) error {
	m.lastUserID = userID
	return m.err
}

func (m *mockCartService) Get(ctx context.Context, userID int) (*models.Cart, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *mockCartService) Update(ctx context.Context, userID int, req *models.CartItemRequest) error {
	m.lastUserID = userID
	return m.err
}

func (m *mockCartService) Remove(ctx context.Context, userID, productID int) error {
	m.lastUserID = userID
	return m.err
}

// setupCartRouter mounts the cart routes behind a real token middleware
func setupCartRouter(svc CartService) (chi.Router, *service.TokenGenerator) {
	logger := zap.NewNop()
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	handler := NewCartHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, authmw.AuthMiddleware(tg, nil))
	return r, tg
}

func TestCartHandler_RequiresToken(t *testing.T) {
	r, _ := setupCartRouter(&mockCartService{})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/cart/"},
		{method: http.MethodPost, path: "/cart/add", body: `{"productId":2,"quantity":1}`},
		{method: http.MethodPut, path: "/cart/update", body: `{"productId":2,"quantity":1}`},
		{method: http.MethodDelete, path: "/cart/remove?productId=2"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestCartHandler_Get(t *testing.T) {
	svc := &mockCartService{cart: &models.Cart{
		Items: []models.CartEntry{
			{ProductID: 2, Name: "Mug", PriceCents: 1299, Quantity: 2, SubtotalCents: 2598},
		},
		TotalCents: 2598,
	}}
	r, tg := setupCartRouter(svc)

	token, err := tg.Generate(7, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// The cart served is the one belonging to the token's user
	assert.Equal(t, 7, svc.lastUserID)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, int64(2598), cart.TotalCents)
}

func TestCartHandler_Add(t *testing.T) {
	svc := &mockCartService{cart: &models.Cart{Items: []models.CartEntry{}, TotalCents: 0}}
	r, tg := setupCartRouter(svc)

	token, err := tg.Generate(7, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/cart/add",
		strings.NewReader(`{"productId":2,"quantity":3}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.lastUserID)
}

func TestCartHandler_Add_UnknownProduct(t *testing.T) {
	svc := &mockCartService{err: models.NewValidationError("unknown product")}
	r, tg := setupCartRouter(svc)

	token, err := tg.Generate(7, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/cart/add",
		strings.NewReader(`{"productId":99,"quantity":1}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_Remove_InvalidProductID(t *testing.T) {
	r, tg := setupCartRouter(&mockCartService{})

	token, err := tg.Generate(7, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/cart/remove?productId=abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
