package balance

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads balance aggregates from the database
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetHouseholdBalances aggregates pending shares into per-member totals.
// A payer's own share of their bill never counts as debt, so both sides of
// the aggregation exclude rows where the share owner is the payer.
func (r *Repository) GetHouseholdBalances(ctx context.Context, householdID int64) ([]*MemberBalance, error) {
	query := `
		SELECT u.id, u.first_name || ' ' || u.last_name,
		       COALESCE(owed.total, 0), COALESCE(due.total, 0)
		FROM household_members hm
		JOIN users u ON hm.user_id = u.id
		LEFT JOIN (
			SELECT s.user_id, SUM(s.amount) AS total
			FROM bill_shares s
			JOIN bills b ON s.bill_id = b.id
			WHERE b.household_id = $1 AND s.status = 'pending' AND s.user_id != b.payer_id
			GROUP BY s.user_id
		) owed ON owed.user_id = u.id
		LEFT JOIN (
			SELECT b.payer_id, SUM(s.amount) AS total
			FROM bill_shares s
			JOIN bills b ON s.bill_id = b.id
			WHERE b.household_id = $1 AND s.status = 'pending' AND s.user_id != b.payer_id
			GROUP BY b.payer_id
		) due ON due.payer_id = u.id
		WHERE hm.household_id = $1 AND hm.status = 'JOINED'
		ORDER BY u.id
	`

	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	var balances []*MemberBalance
	for rows.Next() {
		balance := &MemberBalance{}
		if err := rows.Scan(
			&balance.UserID,
			&balance.UserName,
			&balance.TotalOwed,
			&balance.TotalDue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, balance)
	}

	return balances, nil
}
