package bill

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinhl/housemate/internal/bill/distribute"
)

var billColumns = []string{
	"id", "household_id", "payer_id", "title", "amount", "category",
	"is_recurring", "frequency", "payment_status", "due_date", "created_at", "payer_name",
}

var shareColumns = []string{
	"id", "bill_id", "user_id", "amount", "percentage", "strategy", "status", "updated_at",
}

type recordedNotification struct {
	recipientID int64
	billID      int64
	amount      float64
}

type fakeNotifier struct {
	added    []recordedNotification
	assigned []recordedNotification
	paid     []recordedNotification
}

func (f *fakeNotifier) BillAdded(_ context.Context, recipientID, billID int64, _ string, amount float64) {
	f.added = append(f.added, recordedNotification{recipientID, billID, amount})
}

func (f *fakeNotifier) ShareAssigned(_ context.Context, recipientID, billID int64, _ string, amount float64) {
	f.assigned = append(f.assigned, recordedNotification{recipientID, billID, amount})
}

func (f *fakeNotifier) SharePaid(_ context.Context, recipientID, billID int64, _ string, amount float64) {
	f.paid = append(f.paid, recordedNotification{recipientID, billID, amount})
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeNotifier) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &fakeNotifier{}
	service := NewService(NewRepository(db), NewValidator(), distribute.NewFactory(), notifier)
	return service, mock, notifier
}

func billRow(mock sqlmock.Sqlmock, id, payerID int64, amount float64) *sqlmock.Rows {
	return mock.NewRows(billColumns).
		AddRow(id, int64(1), payerID, "Electricity", amount, "utilities",
			false, nil, "pending", nil, time.Now(), "Alice Jones")
}

func TestService_Distribute_Equal(t *testing.T) {
	service, mock, notifier := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 300.00))

	mock.ExpectExec("DELETE FROM bill_shares").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	for i, userID := range []int64{1, 2, 3} {
		mock.ExpectQuery("INSERT INTO bill_shares").
			WithArgs(int64(10), userID, 100.00, nil, "EQUAL", ShareStatusPending).
			WillReturnRows(mock.NewRows(shareColumns).
				AddRow(int64(i+1), int64(10), userID, 100.00, nil, "EQUAL", "pending", time.Now()))
	}

	result, err := service.Distribute(context.Background(), 10, &DistributeBillRequest{
		Strategy:     "EQUAL",
		Participants: []int64{1, 2, 3},
	})
	require.NoError(t, err)
	require.Len(t, result.Shares, 3)
	assert.Equal(t, 100.00, result.Shares[0].Amount)

	// The payer (user 1) is not notified about their own share.
	require.Len(t, notifier.assigned, 2)
	assert.Equal(t, int64(2), notifier.assigned[0].recipientID)
	assert.Equal(t, int64(3), notifier.assigned[1].recipientID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Distribute_BillNotFound(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(99)).
		WillReturnRows(mock.NewRows(billColumns))

	_, err := service.Distribute(context.Background(), 99, &DistributeBillRequest{
		Strategy:     "EQUAL",
		Participants: []int64{1},
	})
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestService_Distribute_DuplicateParticipant(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 300.00))

	_, err := service.Distribute(context.Background(), 10, &DistributeBillRequest{
		Strategy:     "EQUAL",
		Participants: []int64{1, 2, 1},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

func TestService_Distribute_UnknownStrategy(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 300.00))

	_, err := service.Distribute(context.Background(), 10, &DistributeBillRequest{
		Strategy:     "RANDOM",
		Participants: []int64{1, 2},
	})
	assert.ErrorIs(t, err, distribute.ErrUnknownMode)
}

func TestService_Distribute_BadPercentageSum(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 200.00))

	_, err := service.Distribute(context.Background(), 10, &DistributeBillRequest{
		Strategy:     "PERCENTAGE",
		Participants: []int64{1, 2},
		Params:       map[int64]float64{1: 60, 2: 39.99},
	})
	assert.ErrorIs(t, err, distribute.ErrPercentageSum)
}

func TestService_Distribute_StoresPercentages(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 200.00))

	mock.ExpectExec("DELETE FROM bill_shares").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("INSERT INTO bill_shares").
		WithArgs(int64(10), int64(1), 140.00, 70.0, "PERCENTAGE", ShareStatusPending).
		WillReturnRows(mock.NewRows(shareColumns).
			AddRow(int64(1), int64(10), int64(1), 140.00, 70.0, "PERCENTAGE", "pending", time.Now()))
	mock.ExpectQuery("INSERT INTO bill_shares").
		WithArgs(int64(10), int64(2), 60.00, 30.0, "PERCENTAGE", ShareStatusPending).
		WillReturnRows(mock.NewRows(shareColumns).
			AddRow(int64(2), int64(10), int64(2), 60.00, 30.0, "PERCENTAGE", "pending", time.Now()))

	result, err := service.Distribute(context.Background(), 10, &DistributeBillRequest{
		Strategy:     "PERCENTAGE",
		Participants: []int64{1, 2},
		Params:       map[int64]float64{1: 70, 2: 30},
	})
	require.NoError(t, err)
	require.Len(t, result.Shares, 2)
	require.NotNil(t, result.Shares[0].Percentage)
	assert.Equal(t, 70.0, *result.Shares[0].Percentage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_MarkSharePaid_NotOwner(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bill_shares s").
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows(append(shareColumns, "user_name")).
			AddRow(int64(5), int64(10), int64(2), 50.00, nil, "EQUAL", "pending", time.Now(), "Bob Smith"))

	_, err := service.MarkSharePaid(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrNotShareOwner)
}

func TestService_MarkSharePaid_AlreadyPaid(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bill_shares s").
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows(append(shareColumns, "user_name")).
			AddRow(int64(5), int64(10), int64(2), 50.00, nil, "EQUAL", "paid", time.Now(), "Bob Smith"))

	_, err := service.MarkSharePaid(context.Background(), 5, 2)
	assert.ErrorIs(t, err, ErrShareAlreadyPaid)
}

func TestService_UpdateStatus_NotPayer(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 300.00))

	_, err := service.UpdateStatus(context.Background(), 10, 2, "paid")
	assert.ErrorIs(t, err, ErrNotPayer)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.UpdateStatus(context.Background(), 10, 1, "settled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Delete_RefusesPaidShares(t *testing.T) {
	service, mock, _ := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM bills b").
		WithArgs(int64(10)).
		WillReturnRows(billRow(mock, 10, 1, 300.00))

	mock.ExpectQuery("SELECT (.+) FROM bill_shares s").
		WithArgs(int64(10)).
		WillReturnRows(mock.NewRows(append(shareColumns, "user_name")).
			AddRow(int64(1), int64(10), int64(2), 150.00, nil, "EQUAL", "paid", time.Now(), "Bob Smith"))

	err := service.Delete(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrCannotDeleteBill)
}

func TestService_Create_RejectsInvalidRequest(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), 1, &CreateBillRequest{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)
}
