package distribute

// =============================================================================
// PERCENTAGE DISTRIBUTION STRATEGY
// Splits the bill based on a percentage share per participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Mode returns the distribution mode identifier
func (s *PercentageStrategy) Mode() Mode {
	return ModePercentage
}

// Validate checks if the inputs are valid for a percentage split.
// Every participant needs a percentage entry and the entries for the
// requested participants must sum to exactly 100.00.
func (s *PercentageStrategy) Validate(totalAmount float64, participants []int64, params map[int64]float64) error {
	if err := validateCommon(totalAmount, participants); err != nil {
		return err
	}
	if err := validateParams(participants, params); err != nil {
		return err
	}

	var totalPercentage float64
	for _, userID := range participants {
		totalPercentage += params[userID]
	}
	if roundToTwoDecimals(totalPercentage) != 100.0 {
		return ErrPercentageSum
	}

	return nil
}

// Calculate computes each participant's amount from their percentage share.
// Each amount is rounded independently; the rounded shares are NOT adjusted
// back to the total, so the sum can drift from the total by a cent or two.
// A regression test documents the drift.
func (s *PercentageStrategy) Calculate(totalAmount float64, participants []int64, params map[int64]float64) (map[int64]float64, error) {
	if err := s.Validate(totalAmount, participants, params); err != nil {
		return nil, err
	}

	result := make(map[int64]float64, len(participants))
	for _, userID := range participants {
		result[userID] = roundToTwoDecimals(params[userID] / 100.0 * totalAmount)
	}

	return result, nil
}
