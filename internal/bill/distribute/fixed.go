package distribute

// =============================================================================
// FIXED DISTRIBUTION STRATEGY
// Each participant names a fixed contribution; shares are scaled
// proportionally so they cover the bill total exactly
// =============================================================================

// FixedStrategy implements the Strategy interface for fixed-amount splits.
// The fixed amounts are intended contributions (e.g. groceries where people
// bought different items), not necessarily equal to the bill total. When a
// discount makes the total smaller than the sum of the fixed amounts, every
// contribution is scaled down proportionally.
type FixedStrategy struct{}

// Mode returns the distribution mode identifier
func (s *FixedStrategy) Mode() Mode {
	return ModeFixed
}

// Validate checks if the inputs are valid for a fixed split.
// The fixed amounts must at least cover the bill total.
func (s *FixedStrategy) Validate(totalAmount float64, participants []int64, params map[int64]float64) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}
	if err := validateParams(participants, params); err != nil {
		return err
	}

	if roundToTwoDecimals(s.totalFixed(participants, params)) < roundToTwoDecimals(totalAmount) {
		return ErrInsufficientFixedTotal
	}

	return nil
}

// Calculate scales each participant's fixed amount so the shares sum to the
// bill total: share = fixed / totalFixed * total. When the fixed amounts
// already equal the total this returns them unchanged.
func (s *FixedStrategy) Calculate(totalAmount float64, participants []int64, params map[int64]float64) (map[int64]float64, error) {
	if err := s.Validate(totalAmount, participants, params); err != nil {
		return nil, err
	}

	totalFixed := s.totalFixed(participants, params)

	result := make(map[int64]float64, len(participants))
	for _, userID := range participants {
		if totalFixed == 0 {
			// Only reachable with a zero total; everyone owes nothing.
			result[userID] = 0
			continue
		}
		result[userID] = roundToTwoDecimals(params[userID] / totalFixed * totalAmount)
	}

	return result, nil
}

func (s *FixedStrategy) totalFixed(participants []int64, params map[int64]float64) float64 {
	var total float64
	for _, userID := range participants {
		total += params[userID]
	}
	return total
}
