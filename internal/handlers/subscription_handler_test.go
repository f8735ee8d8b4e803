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

// mockSubscriptionService is a mock implementation of SubscriptionService
type mockSubscriptionService struct {
	subscriber  *models.Subscriber
	subscribers []models.Subscriber
	err         error
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.subscriber, nil
}

func (m *mockSubscriptionService) List(ctx context.Context) ([]models.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.subscribers, nil
}

// setupSubscriptionRouter mounts the subscription routes with a real admin
// gate
func setupSubscriptionRouter(svc SubscriptionService) (chi.Router, *service.TokenGenerator) {
	logger := zap.NewNop()
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	handler := NewSubscriptionHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, authmw.RoleMiddleware(tg, nil, "admin"))
	return r, tg
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name          string
		svc           *mockSubscriptionService
		expectedCode  int
		expectedError string
	}{
		{
			name:         "success",
			svc:          &mockSubscriptionService{subscriber: &models.Subscriber{ID: 1, Email: "alice@example.com"}},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "already subscribed",
			svc:           &mockSubscriptionService{err: models.ErrAlreadySubscribed},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Already subscribed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupSubscriptionRouter(tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/subscribe",
				strings.NewReader(`{"email":"alice@example.com"}`))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestSubscriptionHandler_List_RequiresAdmin(t *testing.T) {
	svc := &mockSubscriptionService{subscribers: []models.Subscriber{{ID: 1, Email: "alice@example.com"}}}
	r, tg := setupSubscriptionRouter(svc)

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
			req := httptest.NewRequest(http.MethodGet, "/subscribe", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
