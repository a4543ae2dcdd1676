package balance

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GetHouseholdBalances(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := mock.NewRows([]string{"id", "name", "owed", "due"}).
		AddRow(int64(1), "Alice Jones", 0.0, 200.0).
		AddRow(int64(2), "Bob Smith", 120.0, 0.0).
		AddRow(int64(3), "Carol White", 80.0, 0.0)

	mock.ExpectQuery("SELECT (.+) FROM household_members hm").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	service := NewService(NewRepository(db))
	balances, err := service.GetHouseholdBalances(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	assert.Equal(t, 200.00, balances[0].Net)
	assert.Equal(t, -120.00, balances[1].Net)
	assert.Equal(t, -80.00, balances[2].Net)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SuggestTransfers(t *testing.T) {
	service := NewService(nil)

	transfers := service.SuggestTransfers([]*MemberBalance{
		{UserID: 1, UserName: "Alice Jones", Net: 200.00},
		{UserID: 2, UserName: "Bob Smith", Net: -120.00},
		{UserID: 3, UserName: "Carol White", Net: -80.00},
	})

	require.Len(t, transfers, 2)

	assert.Equal(t, int64(2), transfers[0].FromUserID)
	assert.Equal(t, int64(1), transfers[0].ToUserID)
	assert.Equal(t, 120.00, transfers[0].Amount)

	assert.Equal(t, int64(3), transfers[1].FromUserID)
	assert.Equal(t, int64(1), transfers[1].ToUserID)
	assert.Equal(t, 80.00, transfers[1].Amount)
}

func TestService_SuggestTransfers_SettledHousehold(t *testing.T) {
	service := NewService(nil)

	transfers := service.SuggestTransfers([]*MemberBalance{
		{UserID: 1, UserName: "Alice Jones", Net: 0},
		{UserID: 2, UserName: "Bob Smith", Net: 0},
	})

	assert.Empty(t, transfers)
}

func TestService_SuggestTransfers_OneDebtorManyCreditors(t *testing.T) {
	service := NewService(nil)

	transfers := service.SuggestTransfers([]*MemberBalance{
		{UserID: 1, UserName: "Alice Jones", Net: 60.00},
		{UserID: 2, UserName: "Bob Smith", Net: 40.00},
		{UserID: 3, UserName: "Carol White", Net: -100.00},
	})

	require.Len(t, transfers, 2)
	assert.Equal(t, 60.00, transfers[0].Amount)
	assert.Equal(t, int64(1), transfers[0].ToUserID)
	assert.Equal(t, 40.00, transfers[1].Amount)
	assert.Equal(t, int64(2), transfers[1].ToUserID)
}
