package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goshop/backend/internal/models"
	"go.uber.org/zap"
)

// SubscriptionService is the interface that wraps methods for newsletter
// subscription business logic
type SubscriptionService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error)
	List(ctx context.Context) ([]models.Subscriber, error)
}

// SubscriptionHandler handles newsletter subscription HTTP requests
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         BaseHandler{Logger: logger},
		subscriptionService: subscriptionService,
	}
}

// RegisterRoutes registers subscription routes. Signup is public, listing
// is gated by the given admin middleware.
func (h *SubscriptionHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Post("/subscribe", h.Subscribe)
	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/subscribe", h.List)
	})
}

// Subscribe handles POST /api/subscribe
// @Summary Subscribe to the newsletter
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Email"
// @Success 201 {object} models.Subscriber
// @Failure 400 {object} map[string]string "Invalid email or already subscribed"
// @Router /api/subscribe [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subscriber, err := h.subscriptionService.Subscribe(r.Context(), &req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, subscriber)
}

// List handles GET /api/subscribe
// @Summary List subscribers
// @Tags subscriptions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Subscriber
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not an admin"
// @Router /api/subscribe [get]
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.subscriptionService.List(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, subscribers)
}
