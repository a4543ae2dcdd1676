package balance

// MemberBalanceResponse represents one member's standing in the API
type MemberBalanceResponse struct {
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name"`
	TotalOwed float64 `json:"total_owed"`
	TotalDue  float64 `json:"total_due"`
	Net       float64 `json:"net"`
}

// TransferResponse represents one suggested settlement payment
type TransferResponse struct {
	FromUserID int64   `json:"from_user_id"`
	FromName   string  `json:"from_name"`
	ToUserID   int64   `json:"to_user_id"`
	ToName     string  `json:"to_name"`
	Amount     float64 `json:"amount"`
}

// HouseholdBalancesResponse is the full balance view of a household
type HouseholdBalancesResponse struct {
	Balances           []*MemberBalanceResponse `json:"balances"`
	SuggestedTransfers []*TransferResponse      `json:"suggested_transfers"`
}

// ToResponse converts a MemberBalance model to its DTO
func (b *MemberBalance) ToResponse() *MemberBalanceResponse {
	return &MemberBalanceResponse{
		UserID:    b.UserID,
		UserName:  b.UserName,
		TotalOwed: b.TotalOwed,
		TotalDue:  b.TotalDue,
		Net:       b.Net,
	}
}

// ToResponse converts a Transfer model to its DTO
func (t *Transfer) ToResponse() *TransferResponse {
	return &TransferResponse{
		FromUserID: t.FromUserID,
		FromName:   t.FromName,
		ToUserID:   t.ToUserID,
		ToName:     t.ToName,
		Amount:     t.Amount,
	}
}
