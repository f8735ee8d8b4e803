package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	authmw "github.com/goshop/backend/internal/auth/middleware"
	"github.com/goshop/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication
// business logic
type AuthService interface {
	// Register creates a new account and returns its first bearer token.
	Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error)
	// Login authenticates a user and returns a bearer token. Returns
	// models.ErrInvalidCredentials for an unknown account or a wrong
	// password alike.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error)
	// Logout revokes the presented token; missing or invalid tokens are
	// ignored.
	Logout(ctx context.Context, token string) error
	// RequestPasswordReset emails a single-use reset code to the account.
	// An unknown email is not an error.
	RequestPasswordReset(ctx context.Context, req *models.PasswordResetRequest) error
	// ResetPassword consumes a reset code and replaces the password.
	// Returns models.ErrInvalidOTP for a wrong, expired or reused code.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	// ListUsers returns all accounts without password hashes.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes. The listing endpoint is
// gated by the given auth middleware.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Post("/password-reset", h.RequestPasswordReset)
	r.Post("/reset-password", h.ResetPassword)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/users", h.ListUsers)
	})
}

// Register handles POST /register
// @Summary Register a new user
// @Description Register a new account with username, email and password. Returns a bearer token and the public profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login handles POST /login
// @Summary Login
// @Description Authenticate with email (or username) and password. Returns a bearer token and the public profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Logout handles POST /logout
// @Summary Logout
// @Description Revokes the presented bearer token. Succeeds whether or not a valid token was presented.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), authmw.BearerToken(r)); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// RequestPasswordReset handles POST /password-reset
// @Summary Request a password reset
// @Description Emails a single-use reset code to the account. The response is the same whether or not the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Account email"
// @Success 200 {object} map[string]string "Acknowledged"
// @Failure 400 {object} map[string]string "Invalid email"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /password-reset [post]
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "If the account exists, a reset code has been sent",
	})
}

// ResetPassword handles POST /reset-password
// @Summary Reset the password with a code
// @Description Consumes the emailed reset code and replaces the account password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} map[string]string "Password replaced"
// @Failure 400 {object} map[string]string "Invalid input or invalid/expired code"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset"})
}

// ListUsers handles GET /users
// @Summary List users
// @Description Returns all accounts. Password hashes are never included.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [get]
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}
