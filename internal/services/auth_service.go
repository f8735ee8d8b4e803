// Package services contains the business logic between handlers and
// repositories
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/goshop/backend/internal/auth/service"
	"github.com/goshop/backend/internal/models"
	"github.com/goshop/backend/internal/tasks"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Create inserts a new user. Returns models.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *models.User) error
	// GetByEmailOrUsername retrieves a user by email or username. Returns
	// models.ErrNotFound when no such user exists.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// GetByID retrieves a user by ID. Returns models.ErrNotFound when no
	// such user exists.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// ListAll retrieves all users without their password hashes.
	ListAll(ctx context.Context) ([]models.User, error)
	// UpdatePassword replaces a user's password hash. Returns
	// models.ErrNotFound when no such user exists.
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
}

// TokenRevoker records a token ID as revoked for the given remaining
// lifetime
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// OTPStore keeps single-use password reset codes
type OTPStore interface {
	// Set records a reset code for the email for the given lifetime.
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume reports whether code matches the stored one and invalidates
	// it on a match.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// minPasswordLength is the minimum accepted password length
const minPasswordLength = 6

// otpTTL is how long a password reset code stays valid
const otpTTL = 10 * time.Minute

// authService implements authentication business logic
type authService struct {
	userRepo       UserRepository
	tokenGenerator *service.TokenGenerator
	revoker        TokenRevoker
	otpStore       OTPStore
	enqueuer       TaskEnqueuer
	logger         *zap.Logger
}

// NewAuthService creates a new auth service. revoker may be nil, in which
// case logout degrades to an acknowledgement without revocation. otpStore
// and enqueuer may be nil, in which case password reset is disabled: reset
// requests are acknowledged without sending a code and no code verifies.
func NewAuthService(
	userRepo UserRepository,
	tokenGenerator *service.TokenGenerator,
	revoker TokenRevoker,
	otpStore OTPStore,
	enqueuer TaskEnqueuer,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		revoker:        revoker,
		otpStore:       otpStore,
		enqueuer:       enqueuer,
		logger:         logger,
	}
}

// Register creates a new user account and returns its first bearer token.
// The stored record never sees the plaintext password, only its bcrypt hash.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if username == "" {
		return "", nil, models.NewValidationError("username is required")
	}
	if email == "" {
		return "", nil, models.NewValidationError("email is required")
	}
	if !emailRegex.MatchString(email) {
		return "", nil, models.NewValidationError("invalid email format")
	}
	if len(req.Password) < minPasswordLength {
		return "", nil, models.NewValidationError("password must be at least 6 characters long")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	// The role is always "user" here. Registration never accepts a role
	// from the client, so nobody can sign up as admin.
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	// Uniqueness of username and email rests on the database's unique keys;
	// the insert itself is the duplicate check.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokenGenerator.Generate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Login authenticates a user and issues a bearer token. Unknown account and
// wrong password both come back as models.ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	login := strings.TrimSpace(req.Email)
	if login == "" || req.Password == "" {
		return "", nil, models.NewValidationError("email and password are required")
	}

	// Emails are stored lowercase; usernames keep their case
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.Generate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes the presented token for the rest of its lifetime. A missing
// or invalid token is not an error: there is nothing to revoke and the
// client discards its copy either way.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" || s.revoker == nil {
		return nil
	}

	claims, err := s.tokenGenerator.Validate(token)
	if err != nil {
		s.logger.Debug("logout with invalid token", zap.Error(err))
		return nil
	}

	return s.revoker.Revoke(ctx, claims.JTI, time.Until(claims.ExpiresAt))
}

// RequestPasswordReset stores a single-use reset code for the account and
// queues an email carrying it. An unknown email gets the same nil result as
// a known one, so the endpoint cannot be used to enumerate accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, req *models.PasswordResetRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("invalid email format")
	}

	if s.otpStore == nil || s.enqueuer == nil {
		return nil
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	if err := s.otpStore.Set(ctx, email, code, otpTTL); err != nil {
		return err
	}

	// Unlike the confirmation emails, the code is the whole point here, so
	// a queue failure is surfaced instead of swallowed.
	task, err := tasks.NewPasswordResetOTPTask(tasks.PasswordResetOTPPayload{
		Email:    user.Email,
		Username: user.Username,
		Code:     code,
	})
	if err != nil {
		return err
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue password reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset code and replaces the account's password
// hash. A wrong, expired or reused code comes back as models.ErrInvalidOTP.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("invalid email format")
	}
	if strings.TrimSpace(req.OTP) == "" {
		return models.NewValidationError("otp is required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return models.NewValidationError("password must be at least 6 characters long")
	}

	if s.otpStore == nil {
		return models.ErrInvalidOTP
	}

	ok, err := s.otpStore.Consume(ctx, email, strings.TrimSpace(req.OTP))
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrInvalidOTP
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidOTP
		}
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash))
}

// generateOTP returns a random 6-digit code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ListUsers returns all accounts without password hashes
func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListAll(ctx)
}
