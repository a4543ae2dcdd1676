package bill

// CreateBillRequest represents the request to create a bill
type CreateBillRequest struct {
	HouseholdID int64   `json:"household_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=rent utilities food other"`
	IsRecurring bool    `json:"is_recurring"`
	Frequency   *string `json:"frequency,omitempty" validate:"omitempty,oneof=monthly weekly one-time"`
	DueDate     *string `json:"due_date,omitempty"` // YYYY-MM-DD
}

// DistributeBillRequest represents the request to split a bill among members.
// Params maps participant user IDs to the mode-specific value (percentage
// share or fixed amount); Equal mode needs none.
type DistributeBillRequest struct {
	Strategy     string            `json:"strategy" validate:"required,oneof=EQUAL PERCENTAGE FIXED"`
	Participants []int64           `json:"participants" validate:"required,min=1"`
	Params       map[int64]float64 `json:"params,omitempty"`
}

// UpdateBillStatusRequest represents the request to change a bill's payment status
type UpdateBillStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue"`
}

// BillResponse represents the response for a bill
type BillResponse struct {
	ID            int64            `json:"id"`
	HouseholdID   int64            `json:"household_id"`
	PayerID       int64            `json:"payer_id"`
	PayerName     string           `json:"payer_name,omitempty"`
	Title         string           `json:"title"`
	Amount        float64          `json:"amount"`
	Category      *string          `json:"category,omitempty"`
	IsRecurring   bool             `json:"is_recurring"`
	Frequency     *string          `json:"frequency,omitempty"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	DueDate       string           `json:"due_date,omitempty"`
	CreatedAt     string           `json:"created_at"`
	Shares        []*ShareResponse `json:"shares,omitempty"`
}

// ShareResponse represents the response for a single share
type ShareResponse struct {
	ID         int64       `json:"id"`
	BillID     int64       `json:"bill_id"`
	UserID     int64       `json:"user_id"`
	UserName   string      `json:"user_name,omitempty"`
	Amount     float64     `json:"amount"`
	Percentage *float64    `json:"percentage,omitempty"`
	Strategy   string      `json:"strategy"`
	Status     ShareStatus `json:"status"`
	UpdatedAt  string      `json:"updated_at"`
}

// ToResponse converts a Bill model to a BillResponse DTO
func (b *Bill) ToResponse() *BillResponse {
	resp := &BillResponse{
		ID:            b.ID,
		HouseholdID:   b.HouseholdID,
		PayerID:       b.PayerID,
		PayerName:     b.PayerName,
		Title:         b.Title,
		Amount:        b.Amount,
		Category:      b.Category,
		IsRecurring:   b.IsRecurring,
		Frequency:     b.Frequency,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if b.DueDate != nil {
		resp.DueDate = b.DueDate.Format("2006-01-02")
	}
	return resp
}

// ToResponse converts a Share model to a ShareResponse DTO
func (s *Share) ToResponse() *ShareResponse {
	return &ShareResponse{
		ID:         s.ID,
		BillID:     s.BillID,
		UserID:     s.UserID,
		UserName:   s.UserName,
		Amount:     s.Amount,
		Percentage: s.Percentage,
		Strategy:   s.Strategy,
		Status:     s.Status,
		UpdatedAt:  s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
