package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goshop/backend/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// Worker sends the confirmation emails queued by the API server
type Worker struct {
	logger       *zap.Logger
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	smtpFrom     string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:       logger,
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		smtpFrom:     smtpFrom,
	}
}

// HandleSubscriptionConfirmation sends a newsletter subscription
// confirmation email
func (w *Worker) HandleSubscriptionConfirmation(ctx context.Context, t *asynq.Task) error {
	var p tasks.SubscriptionConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	subject := "Welcome to the GoShop newsletter"
	body := fmt.Sprintf(
		"<h2>Thanks for subscribing!</h2>"+
			"<p>You will now receive news and offers at %s.</p>",
		p.Email,
	)

	if err := w.sendEmail(p.Email, subject, body); err != nil {
		return err
	}

	w.logger.Info("Subscription confirmation sent", zap.String("email", p.Email))
	return nil
}

// HandleOrderConfirmation sends an order confirmation email
func (w *Worker) HandleOrderConfirmation(ctx context.Context, t *asynq.Task) error {
	var p tasks.OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	subject := fmt.Sprintf("Your GoShop order #%d", p.OrderID)
	body := fmt.Sprintf(
		"<h2>Thank you for your order, %s!</h2>"+
			"<p>Order #%d has been received and is being processed.</p>"+
			"<p>Total: $%.2f</p>",
		p.CustomerName,
		p.OrderID,
		float64(p.TotalCents)/100,
	)

	if err := w.sendEmail(p.Email, subject, body); err != nil {
		return err
	}

	w.logger.Info("Order confirmation sent",
		zap.String("email", p.Email),
		zap.Int("order_id", p.OrderID))
	return nil
}

// HandlePasswordResetOTP sends a password reset code email
func (w *Worker) HandlePasswordResetOTP(ctx context.Context, t *asynq.Task) error {
	var p tasks.PasswordResetOTPPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	subject := "Your GoShop password reset code"
	body := fmt.Sprintf(
		"<h2>Password reset requested</h2>"+
			"<p>Hi %s, use this code to reset your password:</p>"+
			"<h1>%s</h1>"+
			"<p>The code expires in 10 minutes. If you did not request a reset, ignore this email.</p>",
		p.Username,
		p.Code,
	)

	if err := w.sendEmail(p.Email, subject, body); err != nil {
		return err
	}

	w.logger.Info("Password reset code sent", zap.String("email", p.Email))
	return nil
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
