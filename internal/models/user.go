package models

import "time"

// Role is a user's authorization level
type Role string

// Role constants
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the POST /register payload. A role field sent by the
// client is ignored: accounts always start as "user".
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /login payload. The email field also accepts a
// username.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest is the POST /password-reset payload
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the POST /reset-password payload
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse is the success payload of /register and /login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
