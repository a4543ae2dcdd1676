package household

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrHouseholdNotFound   = errors.New("household not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this household")
	ErrNotAuthorized       = errors.New("not authorized to perform this action")
)

// Notifier delivers invitation events to users. The notification feature
// implements it.
type Notifier interface {
	HouseholdInvite(ctx context.Context, recipientID, householdID int64, householdName string)
}

// Service handles household business logic
type Service struct {
	repo     *Repository
	notifier Notifier
}

// NewService creates a new household service
func NewService(repo *Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create creates a new household and adds the creator as a joined admin
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateHouseholdRequest) (*Household, error) {
	household, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.AddMember(ctx, household.ID, &AddMemberRequest{
		UserID: creatorID,
		Role:   MemberRoleAdmin,
	})
	if err != nil {
		// TODO: Should rollback household creation in a transaction
		return nil, err
	}

	// The creator joins immediately rather than waiting on an invitation
	_, err = s.repo.UpdateMember(ctx, household.ID, creatorID, &UpdateMemberRequest{
		Status: statusPtr(MemberStatusJoined),
	})
	if err != nil {
		return nil, err
	}

	return household, nil
}

// GetByID retrieves a household by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Household, error) {
	household, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	return household, nil
}

// GetByIDWithMembers retrieves a household with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Household, []*Member, error) {
	household, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return household, members, nil
}

// ListByUserID retrieves the households the given user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID int64) ([]*Household, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update modifies a household; only admins may do this
func (s *Service) Update(ctx context.Context, id, userID int64, req *UpdateHouseholdRequest) (*Household, error) {
	if err := s.requireAdmin(ctx, id, userID); err != nil {
		return nil, err
	}

	household, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	return household, nil
}

// Delete removes a household; only admins may do this
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.requireAdmin(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddMember invites a user into a household; only admins may do this
func (s *Service) AddMember(ctx context.Context, householdID, adminID int64, req *AddMemberRequest) (*Member, error) {
	if err := s.requireAdmin(ctx, householdID, adminID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMember(ctx, householdID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	member, err := s.repo.AddMember(ctx, householdID, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if household, err := s.repo.GetByID(ctx, householdID); err == nil && household != nil {
			s.notifier.HouseholdInvite(ctx, req.UserID, householdID, household.Name)
		}
	}

	return member, nil
}

// GetMembers retrieves all members of a household
func (s *Service) GetMembers(ctx context.Context, householdID int64) ([]*Member, error) {
	if _, err := s.GetByID(ctx, householdID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(ctx, householdID)
}

// AcceptInvitation marks the caller's pending membership as joined
func (s *Service) AcceptInvitation(ctx context.Context, householdID, userID int64) (*Member, error) {
	member, err := s.repo.GetMember(ctx, householdID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	return s.repo.UpdateMember(ctx, householdID, userID, &UpdateMemberRequest{
		Status: statusPtr(MemberStatusJoined),
	})
}

// UpdateMember changes a member's role or status; only admins may do this
func (s *Service) UpdateMember(ctx context.Context, householdID, adminID, userID int64, req *UpdateMemberRequest) (*Member, error) {
	if err := s.requireAdmin(ctx, householdID, adminID); err != nil {
		return nil, err
	}

	member, err := s.repo.UpdateMember(ctx, householdID, userID, req)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// RemoveMember removes a member; admins can remove anyone, members can leave
func (s *Service) RemoveMember(ctx context.Context, householdID, callerID, userID int64) error {
	if callerID != userID {
		if err := s.requireAdmin(ctx, householdID, callerID); err != nil {
			return err
		}
	}
	return s.repo.RemoveMember(ctx, householdID, userID)
}

// requireAdmin checks the caller is a joined admin of the household
func (s *Service) requireAdmin(ctx context.Context, householdID, userID int64) error {
	member, err := s.repo.GetMember(ctx, householdID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != MemberRoleAdmin {
		return ErrNotAuthorized
	}
	return nil
}

func statusPtr(s MemberStatus) *MemberStatus {
	return &s
}
