package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles notification data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification
func (r *Repository) Create(ctx context.Context, userID int64, notifType Type, message string, relatedID *int64) (*Notification, error) {
	query := `
		INSERT INTO notifications (user_id, type, message, related_id, is_read)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, user_id, type, message, related_id, is_read, created_at
	`

	n := &Notification{}
	err := r.db.QueryRowContext(ctx, query, userID, notifType, message, relatedID).Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Message,
		&n.RelatedID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListByUserID retrieves a user's notifications, newest first
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Notification, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, type, message, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Message,
			&n.RelatedID,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *Repository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read; the row must belong to the user
func (r *Repository) MarkRead(ctx context.Context, id, userID int64) (*Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, message, related_id, is_read, created_at
	`

	n := &Notification{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Message,
		&n.RelatedID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return n, nil
}

// MarkAllRead marks every unread notification of the user as read
func (r *Repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	updated, _ := result.RowsAffected()
	return updated, nil
}
