package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authmw "github.com/goshop/backend/internal/auth/middleware"
	"github.com/goshop/backend/internal/models"
	"go.uber.org/zap"
)

// CartService is the interface that wraps methods for shopping cart
// business logic
type CartService interface {
	Add(ctx context.Context, userID int, req *models.CartItemRequest) error
	Get(ctx context.Context, userID int) (*models.Cart, error)
	Update(ctx context.Context, userID int, req *models.CartItemRequest) error
	Remove(ctx context.Context, userID, productID int) error
}

// CartHandler handles shopping cart HTTP requests. Every route requires a
// bearer token; the cart belongs to the authenticated user.
type CartHandler struct {
	BaseHandler
	cartService CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cartService: cartService,
	}
}

// RegisterRoutes registers cart routes behind the given auth middleware
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/add", h.Add)
		r.Get("/", h.Get)
		r.Put("/update", h.Update)
		r.Delete("/remove", h.Remove)
	})
}

// Add handles POST /api/cart/add
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Product and quantity"
// @Security ApiKeyAuth
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /api/cart/add [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req models.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.Add(r.Context(), userID, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.respondCart(w, r, userID)
}

// Get handles GET /api/cart
// @Summary Get the cart
// @Tags cart
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Cart
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /api/cart [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	h.respondCart(w, r, userID)
}

// Update handles PUT /api/cart/update
// @Summary Set the quantity of a cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Product and quantity"
// @Security ApiKeyAuth
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not in cart"
// @Router /api/cart/update [put]
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req models.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.Update(r.Context(), userID, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.respondCart(w, r, userID)
}

// Remove handles DELETE /api/cart/remove?productId=
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param productId query int true "Product ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not in cart"
// @Router /api/cart/remove [delete]
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(r.URL.Query().Get("productId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	if err := h.cartService.Remove(r.Context(), userID, productID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.respondCart(w, r, userID)
}

// respondCart sends the caller's current cart
func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, userID int) {
	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cart)
}

// callerID retrieves the authenticated user ID placed in the context by the
// auth middleware
func (h *CartHandler) callerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		// Route is registered behind the auth middleware, so this means a
		// wiring mistake rather than a client error
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}
