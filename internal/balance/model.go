package balance

// MemberBalance is the standing of one household member across all of the
// household's pending bill shares.
type MemberBalance struct {
	UserID    int64
	UserName  string
	TotalOwed float64 // what this member still owes other payers
	TotalDue  float64 // what other members still owe this member
	Net       float64 // TotalDue - TotalOwed, rounded to cents
}

// Transfer is one suggested payment that reduces household debt
type Transfer struct {
	FromUserID int64
	FromName   string
	ToUserID   int64
	ToName     string
	Amount     float64
}
