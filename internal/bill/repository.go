package bill

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ShareInput is one row of a distribution to persist, in participant order
type ShareInput struct {
	UserID     int64
	Amount     float64
	Percentage *float64
}

// Repository handles bill and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new bill repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateBill inserts a new bill into the database
func (r *Repository) CreateBill(ctx context.Context, payerID int64, req *CreateBillRequest, dueDate *time.Time) (*Bill, error) {
	query := `
		INSERT INTO bills (household_id, payer_id, title, amount, category, is_recurring, frequency, payment_status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, household_id, payer_id, title, amount, category, is_recurring, frequency, payment_status, due_date, created_at
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query,
		req.HouseholdID,
		payerID,
		req.Title,
		req.Amount,
		req.Category,
		req.IsRecurring,
		req.Frequency,
		PaymentStatusPending,
		dueDate,
	).Scan(
		&bill.ID,
		&bill.HouseholdID,
		&bill.PayerID,
		&bill.Title,
		&bill.Amount,
		&bill.Category,
		&bill.IsRecurring,
		&bill.Frequency,
		&bill.PaymentStatus,
		&bill.DueDate,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return bill, nil
}

// GetBillByID retrieves a bill by its ID
func (r *Repository) GetBillByID(ctx context.Context, id int64) (*Bill, error) {
	query := `
		SELECT b.id, b.household_id, b.payer_id, b.title, b.amount, b.category, b.is_recurring,
		       b.frequency, b.payment_status, b.due_date, b.created_at, u.first_name || ' ' || u.last_name
		FROM bills b
		JOIN users u ON b.payer_id = u.id
		WHERE b.id = $1
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bill.ID,
		&bill.HouseholdID,
		&bill.PayerID,
		&bill.Title,
		&bill.Amount,
		&bill.Category,
		&bill.IsRecurring,
		&bill.Frequency,
		&bill.PaymentStatus,
		&bill.DueDate,
		&bill.CreatedAt,
		&bill.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// ListBillsByHousehold retrieves all bills for a household, newest first
func (r *Repository) ListBillsByHousehold(ctx context.Context, householdID int64, limit, offset int) ([]*Bill, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM bills WHERE household_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, householdID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	query := `
		SELECT b.id, b.household_id, b.payer_id, b.title, b.amount, b.category, b.is_recurring,
		       b.frequency, b.payment_status, b.due_date, b.created_at, u.first_name || ' ' || u.last_name
		FROM bills b
		JOIN users u ON b.payer_id = u.id
		WHERE b.household_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, householdID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		bill := &Bill{}
		if err := rows.Scan(
			&bill.ID,
			&bill.HouseholdID,
			&bill.PayerID,
			&bill.Title,
			&bill.Amount,
			&bill.Category,
			&bill.IsRecurring,
			&bill.Frequency,
			&bill.PaymentStatus,
			&bill.DueDate,
			&bill.CreatedAt,
			&bill.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}

	return bills, total, nil
}

// UpdateBillStatus changes a bill's payment status
func (r *Repository) UpdateBillStatus(ctx context.Context, id int64, status PaymentStatus) (*Bill, error) {
	query := `
		UPDATE bills
		SET payment_status = $2
		WHERE id = $1
		RETURNING id, household_id, payer_id, title, amount, category, is_recurring, frequency, payment_status, due_date, created_at
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&bill.ID,
		&bill.HouseholdID,
		&bill.PayerID,
		&bill.Title,
		&bill.Amount,
		&bill.Category,
		&bill.IsRecurring,
		&bill.Frequency,
		&bill.PaymentStatus,
		&bill.DueDate,
		&bill.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	return bill, nil
}

// DeleteBill deletes a bill and its shares
func (r *Repository) DeleteBill(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bill_shares WHERE bill_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("bill not found")
	}

	return nil
}

// GetJoinedMemberIDs returns the user IDs of the household's joined members
func (r *Repository) GetJoinedMemberIDs(ctx context.Context, householdID int64) ([]int64, error) {
	query := `
		SELECT user_id
		FROM household_members
		WHERE household_id = $1 AND status = 'JOINED'
		ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ReplaceShares drops any previous distribution of the bill and inserts the
// new one, keeping the caller-given participant order
func (r *Repository) ReplaceShares(ctx context.Context, billID int64, strategy string, inputs []ShareInput) ([]*Share, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bill_shares WHERE bill_id = $1`, billID); err != nil {
		return nil, fmt.Errorf("failed to clear shares: %w", err)
	}

	query := `
		INSERT INTO bill_shares (bill_id, user_id, amount, percentage, strategy, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, bill_id, user_id, amount, percentage, strategy, status, updated_at
	`

	shares := make([]*Share, len(inputs))
	for i, input := range inputs {
		share := &Share{}
		err := r.db.QueryRowContext(ctx, query,
			billID, input.UserID, input.Amount, input.Percentage, strategy, ShareStatusPending,
		).Scan(
			&share.ID,
			&share.BillID,
			&share.UserID,
			&share.Amount,
			&share.Percentage,
			&share.Strategy,
			&share.Status,
			&share.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create share: %w", err)
		}
		shares[i] = share
	}

	return shares, nil
}

// GetSharesByBillID retrieves all shares of a bill
func (r *Repository) GetSharesByBillID(ctx context.Context, billID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.bill_id, s.user_id, s.amount, s.percentage, s.strategy, s.status, s.updated_at,
		       u.first_name || ' ' || u.last_name
		FROM bill_shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.bill_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*Share
	for rows.Next() {
		share := &Share{}
		if err := rows.Scan(
			&share.ID,
			&share.BillID,
			&share.UserID,
			&share.Amount,
			&share.Percentage,
			&share.Strategy,
			&share.Status,
			&share.UpdatedAt,
			&share.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// GetShareByID retrieves a single share
func (r *Repository) GetShareByID(ctx context.Context, id int64) (*Share, error) {
	query := `
		SELECT s.id, s.bill_id, s.user_id, s.amount, s.percentage, s.strategy, s.status, s.updated_at,
		       u.first_name || ' ' || u.last_name
		FROM bill_shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.id = $1
	`

	share := &Share{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&share.ID,
		&share.BillID,
		&share.UserID,
		&share.Amount,
		&share.Percentage,
		&share.Strategy,
		&share.Status,
		&share.UpdatedAt,
		&share.UserName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	return share, nil
}

// UpdateShareStatus updates the status of a share
func (r *Repository) UpdateShareStatus(ctx context.Context, id int64, status ShareStatus) (*Share, error) {
	query := `
		UPDATE bill_shares
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, bill_id, user_id, amount, percentage, strategy, status, updated_at
	`

	share := &Share{}
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&share.ID,
		&share.BillID,
		&share.UserID,
		&share.Amount,
		&share.Percentage,
		&share.Strategy,
		&share.Status,
		&share.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update share status: %w", err)
	}

	return share, nil
}
