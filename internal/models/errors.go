package models

import "errors"

// Domain sentinel errors. Handlers translate these to HTTP statuses; the
// message text of ErrUserExists and ErrInvalidCredentials is part of the API
// contract. ErrInvalidCredentials is deliberately the same for an unknown
// account and a wrong password so the login endpoint cannot be used to
// enumerate accounts.
var (
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidOTP         = errors.New("Invalid or expired OTP")
	ErrAlreadySubscribed  = errors.New("Already subscribed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// ValidationError reports malformed or missing input, rejected at the
// boundary before any domain logic runs
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
