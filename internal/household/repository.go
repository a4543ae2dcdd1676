package household

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles household and membership data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new household repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new household into the database
func (r *Repository) Create(ctx context.Context, req *CreateHouseholdRequest) (*Household, error) {
	query := `
		INSERT INTO households (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`

	household := &Household{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Description).Scan(
		&household.ID,
		&household.Name,
		&household.Description,
		&household.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	return household, nil
}

// GetByID retrieves a household by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Household, error) {
	query := `
		SELECT id, name, description, created_at
		FROM households
		WHERE id = $1
	`

	household := &Household{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&household.ID,
		&household.Name,
		&household.Description,
		&household.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get household: %w", err)
	}

	return household, nil
}

// ListByUserID retrieves all households a user belongs to
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]*Household, error) {
	query := `
		SELECT h.id, h.name, h.description, h.created_at
		FROM households h
		JOIN household_members m ON h.id = m.household_id
		WHERE m.user_id = $1
		ORDER BY h.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	defer rows.Close()

	var households []*Household
	for rows.Next() {
		household := &Household{}
		if err := rows.Scan(
			&household.ID,
			&household.Name,
			&household.Description,
			&household.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, household)
	}

	return households, nil
}

// Update modifies an existing household
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateHouseholdRequest) (*Household, error) {
	query := `
		UPDATE households
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, created_at
	`

	household := &Household{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description).Scan(
		&household.ID,
		&household.Name,
		&household.Description,
		&household.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update household: %w", err)
	}

	return household, nil
}

// Delete removes a household from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM households WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete household: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("household not found")
	}

	return nil
}

// AddMember inserts a new membership row
func (r *Repository) AddMember(ctx context.Context, householdID int64, req *AddMemberRequest) (*Member, error) {
	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	query := `
		INSERT INTO household_members (household_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, household_id, user_id, role, status, joined_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, householdID, req.UserID, role, MemberStatusInvited).Scan(
		&member.ID,
		&member.HouseholdID,
		&member.UserID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a single membership row
func (r *Repository) GetMember(ctx context.Context, householdID, userID int64) (*Member, error) {
	query := `
		SELECT m.id, m.household_id, m.user_id, m.role, m.status, m.joined_at, u.first_name, u.last_name, u.email
		FROM household_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.household_id = $1 AND m.user_id = $2
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, householdID, userID).Scan(
		&member.ID,
		&member.HouseholdID,
		&member.UserID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
		&member.FirstName,
		&member.LastName,
		&member.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetMembers retrieves all members of a household
func (r *Repository) GetMembers(ctx context.Context, householdID int64) ([]*Member, error) {
	query := `
		SELECT m.id, m.household_id, m.user_id, m.role, m.status, m.joined_at, u.first_name, u.last_name, u.email
		FROM household_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.household_id = $1
		ORDER BY m.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID,
			&member.HouseholdID,
			&member.UserID,
			&member.Role,
			&member.Status,
			&member.JoinedAt,
			&member.FirstName,
			&member.LastName,
			&member.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// UpdateMember modifies a member's role or status
func (r *Repository) UpdateMember(ctx context.Context, householdID, userID int64, req *UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE household_members
		SET role = COALESCE($3, role),
		    status = COALESCE($4, status)
		WHERE household_id = $1 AND user_id = $2
		RETURNING id, household_id, user_id, role, status, joined_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, householdID, userID, req.Role, req.Status).Scan(
		&member.ID,
		&member.HouseholdID,
		&member.UserID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// RemoveMember deletes a membership row
func (r *Repository) RemoveMember(ctx context.Context, householdID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM household_members WHERE household_id = $1 AND user_id = $2`,
		householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
