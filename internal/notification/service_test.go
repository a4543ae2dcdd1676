package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationColumns = []string{"id", "user_id", "type", "message", "related_id", "is_read", "created_at"}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(db), zerolog.Nop()), mock
}

func TestService_ShareAssigned(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(2), TypeShareAssigned, `You owe 100.00 for "Electricity"`, int64(10)).
		WillReturnRows(mock.NewRows(notificationColumns).
			AddRow(int64(1), int64(2), "SHARE_ASSIGNED", `You owe 100.00 for "Electricity"`, int64(10), false, time.Now()))

	service.ShareAssigned(context.Background(), 2, 10, "Electricity", 100.00)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ShareAssigned_SwallowsRepositoryError(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO notifications").
		WillReturnError(assert.AnError)

	// Must not panic or surface the failure.
	service.ShareAssigned(context.Background(), 2, 10, "Electricity", 100.00)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_MarkRead_NotFound(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("UPDATE notifications").
		WithArgs(int64(99), int64(1)).
		WillReturnRows(mock.NewRows(notificationColumns))

	_, err := service.MarkRead(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestService_List(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs(int64(1), 20, 0).
		WillReturnRows(mock.NewRows(notificationColumns).
			AddRow(int64(2), int64(1), "SHARE_PAID", "A share of 50.00 for \"Rent\" was paid", int64(4), false, time.Now()).
			AddRow(int64(1), int64(1), "SHARE_ASSIGNED", "You owe 50.00 for \"Rent\"", int64(4), true, time.Now()))

	notifications, total, err := service.List(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, notifications, 2)
	assert.Equal(t, TypeSharePaid, notifications[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}
