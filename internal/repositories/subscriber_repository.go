package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goshop/backend/internal/models"
)

// subscriberRepository implements newsletter subscription storage over MySQL
type subscriberRepository struct {
	db *sql.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *sql.DB) *subscriberRepository {
	return &subscriberRepository{
		db: db,
	}
}

// Create inserts a new subscriber. The unique key on email turns a repeat
// subscription into models.ErrAlreadySubscribed.
func (r *subscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	query := `INSERT INTO subscribers (email) VALUES (?)`

	result, err := r.db.ExecContext(ctx, query, subscriber.Email)
	if err != nil {
		if isDuplicateKey(err) {
			return models.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	subscriber.ID = int(id)
	return nil
}

// ListAll retrieves all subscribers
func (r *subscriberRepository) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	query := `
		SELECT id, email, created_at
		FROM subscribers
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := []models.Subscriber{}
	for rows.Next() {
		var subscriber models.Subscriber
		err := rows.Scan(
			&subscriber.ID,
			&subscriber.Email,
			&subscriber.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, subscriber)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return subscribers, nil
}
