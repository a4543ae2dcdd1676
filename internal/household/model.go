package household

import "time"

// MemberStatus represents the status of a household member
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "INVITED"
	MemberStatusJoined  MemberStatus = "JOINED"
)

// MemberRole represents the role of a household member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// Household represents a shared home whose members split bills
type Household struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member represents a user's membership in a household
type Member struct {
	ID          int64        `json:"id"`
	HouseholdID int64        `json:"household_id"`
	UserID      int64        `json:"user_id"`
	Role        MemberRole   `json:"role"`
	Status      MemberStatus `json:"status"`
	JoinedAt    time.Time    `json:"joined_at"`

	// Populated via JOIN
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}
