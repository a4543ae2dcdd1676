package distribute

// =============================================================================
// EQUAL DISTRIBUTION STRATEGY
// Splits the bill equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Mode returns the distribution mode identifier
func (s *EqualStrategy) Mode() Mode {
	return ModeEqual
}

// Validate checks if the inputs are valid for an equal split.
// Params are ignored for this mode.
func (s *EqualStrategy) Validate(totalAmount float64, participants []int64, _ map[int64]float64) error {
	return validateCommon(totalAmount, participants)
}

// Calculate divides the total amount evenly among all participants.
// Equal division of a decimal amount can leave a residual cent
// (100.00 / 3 = 33.33 each, 0.01 left over). The first participant in the
// caller-given order absorbs the whole residual, so the shares always sum
// back to the total exactly.
func (s *EqualStrategy) Calculate(totalAmount float64, participants []int64, params map[int64]float64) (map[int64]float64, error) {
	if err := s.Validate(totalAmount, participants, params); err != nil {
		return nil, err
	}

	count := float64(len(participants))
	share := roundToTwoDecimals(totalAmount / count)
	residual := roundToTwoDecimals(totalAmount - share*count)

	result := make(map[int64]float64, len(participants))
	for i, userID := range participants {
		if i == 0 {
			result[userID] = roundToTwoDecimals(share + residual)
			continue
		}
		result[userID] = share
	}

	return result, nil
}
