package bill

import "time"

// PaymentStatus represents the payment status of a bill
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// ShareStatus represents the status of a single member's share
type ShareStatus string

const (
	ShareStatusPending ShareStatus = "pending"
	ShareStatusPaid    ShareStatus = "paid"
)

// Bill categories and recurrence frequencies accepted by the validator
var (
	ValidCategories  = []string{"rent", "utilities", "food", "other"}
	ValidStatuses    = []string{"pending", "paid", "overdue"}
	ValidFrequencies = []string{"monthly", "weekly", "one-time"}
)

// Bill represents a household expense paid by one member
type Bill struct {
	ID            int64         `json:"id"`
	HouseholdID   int64         `json:"household_id"`
	PayerID       int64         `json:"payer_id"`
	Title         string        `json:"title"`
	Amount        float64       `json:"amount"`
	Category      *string       `json:"category,omitempty"`
	IsRecurring   bool          `json:"is_recurring"`
	Frequency     *string       `json:"frequency,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Share represents one member's portion of a distributed bill
type Share struct {
	ID         int64       `json:"id"`
	BillID     int64       `json:"bill_id"`
	UserID     int64       `json:"user_id"`
	Amount     float64     `json:"amount"`
	Percentage *float64    `json:"percentage,omitempty"`
	Strategy   string      `json:"strategy"`
	Status     ShareStatus `json:"status"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// BillWithShares combines a bill with its calculated shares
type BillWithShares struct {
	Bill   *Bill
	Shares []*Share
}

// IsPaid reports whether the bill itself has been settled
func (b *Bill) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// IsOverdue reports whether the bill is overdue
func (b *Bill) IsOverdue() bool {
	return b.PaymentStatus == PaymentStatusOverdue
}
