package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "avatar_url", "created_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("marin@test.com", "hashed", "Marin", "Held", nil).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "marin@test.com", "hashed", "Marin", "Held", nil, now))

	repo := NewRepository(db)
	user, err := repo.Create(context.Background(), &CreateUserRequest{
		Email:        "marin@test.com",
		PasswordHash: "hashed",
		FirstName:    "Marin",
		LastName:     "Held",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "marin@test.com", user.Email)
	assert.Equal(t, "Marin Held", user.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByEmail_NotFoundReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@test.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	repo := NewRepository(db)
	user, err := repo.GetByEmail(context.Background(), "nobody@test.com")

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "a@test.com", "h1", "Ada", "Ali", nil, now).
			AddRow(2, "b@test.com", "h2", "Ben", "Bo", nil, now))

	repo := NewRepository(db)
	users, total, err := repo.List(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.Delete(context.Background(), 99)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
