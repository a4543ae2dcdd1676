package household

// CreateHouseholdRequest represents the request to create a new household
type CreateHouseholdRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateHouseholdRequest represents the request to update a household
type UpdateHouseholdRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest represents the request to invite a user into a household
type AddMemberRequest struct {
	UserID int64      `json:"user_id" validate:"required"`
	Role   MemberRole `json:"role"`
}

// UpdateMemberRequest represents the request to update a member's status or role
type UpdateMemberRequest struct {
	Status *MemberStatus `json:"status,omitempty"`
	Role   *MemberRole   `json:"role,omitempty"`
}

// HouseholdResponse represents the response for a household
type HouseholdResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	CreatedAt   string            `json:"created_at"`
	Members     []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a household response
type MemberResponse struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `json:"email"`
	Role      MemberRole   `json:"role"`
	Status    MemberStatus `json:"status"`
	JoinedAt  string       `json:"joined_at"`
}

// ToResponse converts a Household model to a HouseholdResponse DTO
func (h *Household) ToResponse() *HouseholdResponse {
	return &HouseholdResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      m.Role,
		Status:    m.Status,
		JoinedAt:  m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
