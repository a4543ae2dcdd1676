package balance

import (
	"context"
	"math"
	"sort"
)

// Service handles balance business logic
type Service struct {
	repo *Repository
}

// NewService creates a new balance service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetHouseholdBalances returns every joined member's standing, net rounded
// to cents
func (s *Service) GetHouseholdBalances(ctx context.Context, householdID int64) ([]*MemberBalance, error) {
	balances, err := s.repo.GetHouseholdBalances(ctx, householdID)
	if err != nil {
		return nil, err
	}

	for _, b := range balances {
		b.TotalOwed = roundToCents(b.TotalOwed)
		b.TotalDue = roundToCents(b.TotalDue)
		b.Net = roundToCents(b.TotalDue - b.TotalOwed)
	}

	return balances, nil
}

// SuggestTransfers produces a minimal-ish set of payments that settles the
// household: debtors pay creditors greedily, largest balances first. The
// input is not modified.
func (s *Service) SuggestTransfers(balances []*MemberBalance) []Transfer {
	type entry struct {
		userID int64
		name   string
		amount float64
	}

	var debtors, creditors []entry
	for _, b := range balances {
		switch {
		case b.Net < -0.004:
			debtors = append(debtors, entry{b.UserID, b.UserName, -b.Net})
		case b.Net > 0.004:
			creditors = append(creditors, entry{b.UserID, b.UserName, b.Net})
		}
	}

	sort.Slice(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := roundToCents(math.Min(debtors[i].amount, creditors[j].amount))
		if amount > 0 {
			transfers = append(transfers, Transfer{
				FromUserID: debtors[i].userID,
				FromName:   debtors[i].name,
				ToUserID:   creditors[j].userID,
				ToName:     creditors[j].name,
				Amount:     amount,
			})
		}

		debtors[i].amount = roundToCents(debtors[i].amount - amount)
		creditors[j].amount = roundToCents(creditors[j].amount - amount)
		if debtors[i].amount <= 0.004 {
			i++
		}
		if creditors[j].amount <= 0.004 {
			j++
		}
	}

	return transfers
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
