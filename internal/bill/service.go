package bill

import (
	"context"
	"errors"
	"time"

	"github.com/marinhl/housemate/internal/bill/distribute"
)

// Common errors
var (
	ErrBillNotFound         = errors.New("bill not found")
	ErrShareNotFound        = errors.New("share not found")
	ErrNotPayer             = errors.New("only the payer can perform this action")
	ErrNotShareOwner        = errors.New("only the owing member can mark their share paid")
	ErrShareAlreadyPaid     = errors.New("share is already paid")
	ErrDuplicateParticipant = errors.New("duplicate participant in distribution request")
	ErrCannotDeleteBill     = errors.New("cannot delete a bill with paid shares")
	ErrInvalidStatus        = errors.New("invalid payment status")
)

// Notifier publishes bill events to household members. The notification
// feature implements it; the bill service only depends on this interface.
type Notifier interface {
	BillAdded(ctx context.Context, recipientID, billID int64, billTitle string, amount float64)
	ShareAssigned(ctx context.Context, recipientID, billID int64, billTitle string, amount float64)
	SharePaid(ctx context.Context, recipientID, billID int64, billTitle string, amount float64)
}

// Service handles bill business logic
type Service struct {
	repo      *Repository
	validator *Validator
	factory   *distribute.Factory
	notifier  Notifier
}

// NewService creates a new bill service with dependencies injected
func NewService(repo *Repository, validator *Validator, factory *distribute.Factory, notifier Notifier) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		factory:   factory,
		notifier:  notifier,
	}
}

// Create validates and stores a new bill
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateBillRequest) (*Bill, error) {
	if fields := s.validator.Validate(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, &ValidationError{Fields: []FieldError{{"due_date", "Due date must be in YYYY-MM-DD format"}}}
		}
		dueDate = &parsed
	}

	bill, err := s.repo.CreateBill(ctx, payerID, req, dueDate)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		memberIDs, err := s.repo.GetJoinedMemberIDs(ctx, bill.HouseholdID)
		if err == nil {
			for _, memberID := range memberIDs {
				if memberID == payerID {
					continue
				}
				s.notifier.BillAdded(ctx, memberID, bill.ID, bill.Title, bill.Amount)
			}
		}
	}

	return bill, nil
}

// GetByID retrieves a bill with its shares
func (s *Service) GetByID(ctx context.Context, id int64) (*BillWithShares, error) {
	bill, err := s.repo.GetBillByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	shares, err := s.repo.GetSharesByBillID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BillWithShares{Bill: bill, Shares: shares}, nil
}

// ListByHousehold retrieves bills for a household with pagination
func (s *Service) ListByHousehold(ctx context.Context, householdID int64, page, perPage int) ([]*Bill, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListBillsByHousehold(ctx, householdID, perPage, offset)
}

// Distribute splits the bill's amount among the given participants using the
// requested strategy and persists the resulting shares, replacing any
// previous distribution of the same bill. The engine call is pure; only the
// persistence of its output touches the database.
func (s *Service) Distribute(ctx context.Context, billID int64, req *DistributeBillRequest) (*BillWithShares, error) {
	bill, err := s.repo.GetBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	seen := make(map[int64]struct{}, len(req.Participants))
	for _, userID := range req.Participants {
		if _, ok := seen[userID]; ok {
			return nil, ErrDuplicateParticipant
		}
		seen[userID] = struct{}{}
	}

	strategy, err := s.factory.CreateFromString(req.Strategy)
	if err != nil {
		return nil, err
	}

	amounts, err := strategy.Calculate(bill.Amount, req.Participants, req.Params)
	if err != nil {
		return nil, err
	}

	inputs := make([]ShareInput, len(req.Participants))
	for i, userID := range req.Participants {
		input := ShareInput{UserID: userID, Amount: amounts[userID]}
		if strategy.Mode() == distribute.ModePercentage {
			percentage := req.Params[userID]
			input.Percentage = &percentage
		}
		inputs[i] = input
	}

	shares, err := s.repo.ReplaceShares(ctx, billID, string(strategy.Mode()), inputs)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for _, share := range shares {
			if share.UserID == bill.PayerID {
				continue
			}
			s.notifier.ShareAssigned(ctx, share.UserID, bill.ID, bill.Title, share.Amount)
		}
	}

	return &BillWithShares{Bill: bill, Shares: shares}, nil
}

// MarkSharePaid lets the owing member mark their share as paid
func (s *Service) MarkSharePaid(ctx context.Context, shareID, userID int64) (*Share, error) {
	share, err := s.repo.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrShareNotFound
	}

	if share.UserID != userID {
		return nil, ErrNotShareOwner
	}
	if share.Status == ShareStatusPaid {
		return nil, ErrShareAlreadyPaid
	}

	updated, err := s.repo.UpdateShareStatus(ctx, shareID, ShareStatusPaid)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if bill, err := s.repo.GetBillByID(ctx, share.BillID); err == nil && bill != nil {
			s.notifier.SharePaid(ctx, bill.PayerID, bill.ID, bill.Title, share.Amount)
		}
	}

	return updated, nil
}

// UpdateStatus changes a bill's payment status; only the payer may do this
func (s *Service) UpdateStatus(ctx context.Context, billID, userID int64, status string) (*Bill, error) {
	if !contains(ValidStatuses, status) {
		return nil, ErrInvalidStatus
	}

	bill, err := s.repo.GetBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.PayerID != userID {
		return nil, ErrNotPayer
	}

	return s.repo.UpdateBillStatus(ctx, billID, PaymentStatus(status))
}

// Delete removes a bill unless any of its shares are already paid
func (s *Service) Delete(ctx context.Context, billID, userID int64) error {
	bill, err := s.repo.GetBillByID(ctx, billID)
	if err != nil {
		return err
	}
	if bill == nil {
		return ErrBillNotFound
	}
	if bill.PayerID != userID {
		return ErrNotPayer
	}

	shares, err := s.repo.GetSharesByBillID(ctx, billID)
	if err != nil {
		return err
	}
	for _, share := range shares {
		if share.Status == ShareStatusPaid {
			return ErrCannotDeleteBill
		}
	}

	return s.repo.DeleteBill(ctx, billID)
}
