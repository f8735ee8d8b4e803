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

// mockProductService is a mock implementation of ProductService
type mockProductService struct {
	product  *models.Product
	products []models.Product
	err      error
}

func (m *mockProductService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) Get(ctx context.Context, productID int) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) List(ctx context.Context) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductService) Update(ctx context.Context, productID int, req *models.ProductRequest) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) Delete(ctx context.Context, productID int) error {
	return m.err
}

// setupProductRouter mounts the catalog routes under /products with a real
// admin gate
func setupProductRouter(svc ProductService) (chi.Router, *service.TokenGenerator) {
	logger := zap.NewNop()
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	handler := NewProductHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, authmw.RoleMiddleware(tg, nil, "admin"))
	return r, tg
}

func TestProductHandler_List_Public(t *testing.T) {
	svc := &mockProductService{products: []models.Product{
		{ID: 1, Name: "Mug", PriceCents: 1299},
	}}
	r, _ := setupProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	r, _ := setupProductRouter(&mockProductService{err: models.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/products/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	r, _ := setupProductRouter(&mockProductService{})

	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Create_RequiresAdmin(t *testing.T) {
	svc := &mockProductService{product: &models.Product{ID: 1, Name: "Mug", PriceCents: 1299}}
	r, tg := setupProductRouter(svc)

	adminToken, err := tg.Generate(1, "admin")
	require.NoError(t, err)
	userToken, err := tg.Generate(2, "user")
	require.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		expectedCode int
	}{
		{name: "admin can create", token: adminToken, expectedCode: http.StatusCreated},
		{name: "user is forbidden", token: userToken, expectedCode: http.StatusForbidden},
		{name: "anonymous is unauthorized", token: "", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products/",
				strings.NewReader(`{"name":"Mug","price":1299}`))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestProductHandler_Delete_RequiresAdmin(t *testing.T) {
	r, tg := setupProductRouter(&mockProductService{})

	userToken, err := tg.Generate(2, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
