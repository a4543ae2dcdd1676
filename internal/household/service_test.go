package household

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberColumns = []string{"id", "household_id", "user_id", "role", "status", "joined_at"}

var memberJoinColumns = []string{
	"id", "household_id", "user_id", "role", "status", "joined_at",
	"first_name", "last_name", "email",
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(db), nil), mock
}

func TestService_Create_AddsCreatorAsJoinedAdmin(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO households").
		WithArgs("Baker Street", nil).
		WillReturnRows(mock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(int64(1), "Baker Street", nil, time.Now()))

	mock.ExpectQuery("INSERT INTO household_members").
		WithArgs(int64(1), int64(7), MemberRoleAdmin, MemberStatusInvited).
		WillReturnRows(mock.NewRows(memberColumns).
			AddRow(int64(1), int64(1), int64(7), "ADMIN", "INVITED", time.Now()))

	mock.ExpectQuery("UPDATE household_members").
		WithArgs(int64(1), int64(7), nil, MemberStatusJoined).
		WillReturnRows(mock.NewRows(memberColumns).
			AddRow(int64(1), int64(1), int64(7), "ADMIN", "JOINED", time.Now()))

	household, err := service.Create(context.Background(), 7, &CreateHouseholdRequest{Name: "Baker Street"})
	require.NoError(t, err)
	assert.Equal(t, "Baker Street", household.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddMember_RequiresAdmin(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM household_members m").
		WithArgs(int64(1), int64(7)).
		WillReturnRows(mock.NewRows(memberJoinColumns).
			AddRow(int64(1), int64(1), int64(7), "MEMBER", "JOINED", time.Now(), "Bob", "Smith", "bob@example.com"))

	_, err := service.AddMember(context.Background(), 1, 7, &AddMemberRequest{UserID: 9})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestService_AddMember_RejectsExistingMember(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM household_members m").
		WithArgs(int64(1), int64(7)).
		WillReturnRows(mock.NewRows(memberJoinColumns).
			AddRow(int64(1), int64(1), int64(7), "ADMIN", "JOINED", time.Now(), "Alice", "Jones", "alice@example.com"))

	mock.ExpectQuery("SELECT (.+) FROM household_members m").
		WithArgs(int64(1), int64(9)).
		WillReturnRows(mock.NewRows(memberJoinColumns).
			AddRow(int64(2), int64(1), int64(9), "MEMBER", "INVITED", time.Now(), "Bob", "Smith", "bob@example.com"))

	_, err := service.AddMember(context.Background(), 1, 7, &AddMemberRequest{UserID: 9})
	assert.ErrorIs(t, err, ErrMemberAlreadyExists)
}

func TestService_AcceptInvitation_UnknownMember(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM household_members m").
		WithArgs(int64(1), int64(9)).
		WillReturnRows(mock.NewRows(memberJoinColumns))

	_, err := service.AcceptInvitation(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestService_RemoveMember_MemberCanLeave(t *testing.T) {
	service, mock := newTestService(t)

	// No admin check when the caller removes themselves.
	mock.ExpectExec("DELETE FROM household_members").
		WithArgs(int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := service.RemoveMember(context.Background(), 1, 9, 9)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM households").
		WithArgs(int64(42)).
		WillReturnRows(mock.NewRows([]string{"id", "name", "description", "created_at"}))

	_, err := service.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrHouseholdNotFound)
}
