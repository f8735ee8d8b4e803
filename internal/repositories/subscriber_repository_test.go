package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/goshop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSubscriberTestRepository creates a subscriber repository with a mock
// database
func setupSubscriberTestRepository(t *testing.T) (*subscriberRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSubscriberRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSubscriberRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedID    int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO subscribers`).
					WithArgs("alice@example.com").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedID: 1,
		},
		{
			name: "already subscribed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO subscribers`).
					WithArgs("alice@example.com").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'uq_subscribers_email'"})
			},
			expectedError: models.ErrAlreadySubscribed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubscriberTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			subscriber := &models.Subscriber{Email: "alice@example.com"}
			err := repo.Create(context.Background(), subscriber)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, subscriber.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriberRepository_ListAll(t *testing.T) {
	repo, mock, cleanup := setupSubscriberTestRepository(t)
	defer cleanup()

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "created_at"}).
		AddRow(1, "alice@example.com", createdAt).
		AddRow(2, "bob@example.com", createdAt)
	mock.ExpectQuery(`SELECT id, email, created_at FROM subscribers`).
		WillReturnRows(rows)

	subscribers, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, subscribers, 2)
	assert.Equal(t, "alice@example.com", subscribers[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
