package services

import (
	"context"
	"strings"

	"github.com/goshop/backend/internal/models"
	"github.com/goshop/backend/internal/tasks"
	"go.uber.org/zap"
)

// SubscriberRepository is the interface that wraps methods for subscribers
// table data access
type SubscriberRepository interface {
	// Create inserts a new subscriber. Returns models.ErrAlreadySubscribed
	// when the email is already subscribed.
	Create(ctx context.Context, subscriber *models.Subscriber) error
	// ListAll retrieves all subscribers.
	ListAll(ctx context.Context) ([]models.Subscriber, error)
}

// subscriptionService implements newsletter subscription business logic
type subscriptionService struct {
	subscriberRepo SubscriberRepository
	enqueuer       TaskEnqueuer
	logger         *zap.Logger
}

// NewSubscriptionService creates a new subscription service. enqueuer may
// be nil, in which case no confirmation emails are queued.
func NewSubscriptionService(
	subscriberRepo SubscriberRepository,
	enqueuer TaskEnqueuer,
	logger *zap.Logger,
) *subscriptionService {
	return &subscriptionService{
		subscriberRepo: subscriberRepo,
		enqueuer:       enqueuer,
		logger:         logger,
	}
}

// Subscribe records a newsletter subscription. Duplicate signups surface as
// models.ErrAlreadySubscribed via the unique key on email.
func (s *subscriptionService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, models.NewValidationError("invalid email format")
	}

	subscriber := &models.Subscriber{Email: email}
	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, email)

	return subscriber, nil
}

// List retrieves all subscribers
func (s *subscriptionService) List(ctx context.Context) ([]models.Subscriber, error) {
	return s.subscriberRepo.ListAll(ctx)
}

// enqueueConfirmation queues the confirmation email. The subscription is
// already stored, so a queue failure is logged and not surfaced.
func (s *subscriptionService) enqueueConfirmation(ctx context.Context, email string) {
	if s.enqueuer == nil {
		return
	}

	task, err := tasks.NewSubscriptionConfirmationTask(email)
	if err != nil {
		s.logger.Warn("failed to build subscription confirmation task", zap.Error(err))
		return
	}

	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		s.logger.Warn("failed to enqueue subscription confirmation", zap.Error(err))
	}
}
