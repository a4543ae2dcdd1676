package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Service handles notification business logic. It also satisfies the bill
// package's Notifier interface so bill events land in members' inboxes
// without the bill service knowing about this package.
type Service struct {
	repo   *Repository
	logger zerolog.Logger
}

// NewService creates a new notification service
func NewService(repo *Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BillAdded tells household members that a new bill was recorded
func (s *Service) BillAdded(ctx context.Context, recipientID, billID int64, billTitle string, amount float64) {
	message := fmt.Sprintf("New bill %q for %.2f was added to your household", billTitle, amount)
	if _, err := s.repo.Create(ctx, recipientID, TypeBillAdded, message, &billID); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", recipientID).
			Int64("bill_id", billID).
			Msg("failed to deliver bill added notification")
	}
}

// ShareAssigned records that a member owes part of a bill. Delivery is best
// effort: a failed insert is logged, never propagated to the caller.
func (s *Service) ShareAssigned(ctx context.Context, recipientID, billID int64, billTitle string, amount float64) {
	message := fmt.Sprintf("You owe %.2f for %q", amount, billTitle)
	if _, err := s.repo.Create(ctx, recipientID, TypeShareAssigned, message, &billID); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", recipientID).
			Int64("bill_id", billID).
			Msg("failed to deliver share assignment notification")
	}
}

// SharePaid tells the payer that one share of their bill was settled
func (s *Service) SharePaid(ctx context.Context, recipientID, billID int64, billTitle string, amount float64) {
	message := fmt.Sprintf("A share of %.2f for %q was paid", amount, billTitle)
	if _, err := s.repo.Create(ctx, recipientID, TypeSharePaid, message, &billID); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", recipientID).
			Int64("bill_id", billID).
			Msg("failed to deliver share paid notification")
	}
}

// HouseholdInvite tells a user they were invited into a household
func (s *Service) HouseholdInvite(ctx context.Context, recipientID, householdID int64, householdName string) {
	message := fmt.Sprintf("You were invited to join %q", householdName)
	if _, err := s.repo.Create(ctx, recipientID, TypeHouseholdInvite, message, &householdID); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", recipientID).
			Int64("household_id", householdID).
			Msg("failed to deliver household invite notification")
	}
}

// List retrieves a user's notifications with pagination
func (s *Service) List(ctx context.Context, userID int64, page, perPage int) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// CountUnread returns the user's unread notification count
func (s *Service) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, id, userID int64) (*Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}

// MarkAllRead marks all of the user's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
