package notification

import "time"

// Type classifies a notification by the event that produced it
type Type string

const (
	TypeBillAdded       Type = "BILL_ADDED"
	TypeShareAssigned   Type = "SHARE_ASSIGNED"
	TypeSharePaid       Type = "SHARE_PAID"
	TypeHouseholdInvite Type = "HOUSEHOLD_INVITE"
)

// Notification represents one message delivered to a user
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	RelatedID *int64    `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
