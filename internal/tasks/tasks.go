// Package tasks defines the background email tasks exchanged between the
// API server and the worker over the asynq queue
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeSubscriptionConfirmation = "email:subscription_confirmation"
	TypeOrderConfirmation        = "email:order_confirmation"
	TypePasswordResetOTP         = "email:password_reset_otp"
)

// SubscriptionConfirmationPayload is the payload of a subscription
// confirmation email task
type SubscriptionConfirmationPayload struct {
	Email string `json:"email"`
}

// OrderConfirmationPayload is the payload of an order confirmation email
// task
type OrderConfirmationPayload struct {
	Email        string `json:"email"`
	CustomerName string `json:"customerName"`
	OrderID      int    `json:"orderId"`
	TotalCents   int64  `json:"totalCents"`
}

// PasswordResetOTPPayload is the payload of a password reset code email task
type PasswordResetOTPPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

// NewSubscriptionConfirmationTask creates a subscription confirmation email
// task
func NewSubscriptionConfirmationTask(email string) (*asynq.Task, error) {
	payload, err := json.Marshal(SubscriptionConfirmationPayload{Email: email})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypeSubscriptionConfirmation, payload), nil
}

// NewOrderConfirmationTask creates an order confirmation email task
func NewOrderConfirmationTask(p OrderConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypeOrderConfirmation, payload), nil
}

// NewPasswordResetOTPTask creates a password reset code email task
func NewPasswordResetOTPTask(p PasswordResetOTPPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypePasswordResetOTP, payload), nil
}
