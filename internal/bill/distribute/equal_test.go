package distribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualStrategy_EvenDivision(t *testing.T) {
	s := &EqualStrategy{}

	result, err := s.Calculate(300.00, []int64{1, 2, 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 100.00, 2: 100.00, 3: 100.00}, result)
}

func TestEqualStrategy_ResidualGoesToFirstParticipant(t *testing.T) {
	s := &EqualStrategy{}

	result, err := s.Calculate(100.00, []int64{1, 2, 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 33.34, 2: 33.33, 3: 33.33}, result)
	assert.InDelta(t, 100.00, sumShares(result), 1e-9)
}

func TestEqualStrategy_ResidualFollowsOrderNotIdentifier(t *testing.T) {
	s := &EqualStrategy{}

	// Same amount, reordered participants: the residual cent lands on the
	// first-listed participant, not the smallest identifier.
	result, err := s.Calculate(100.00, []int64{3, 1, 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{3: 33.34, 1: 33.33, 2: 33.33}, result)
}

func TestEqualStrategy_NegativeResidual(t *testing.T) {
	s := &EqualStrategy{}

	// 200.00 / 3 rounds up to 66.67, so the first participant gives a cent back.
	result, err := s.Calculate(200.00, []int64{1, 2, 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 66.66, 2: 66.67, 3: 66.67}, result)
	assert.InDelta(t, 200.00, sumShares(result), 1e-9)
}

func TestEqualStrategy_SingleParticipant(t *testing.T) {
	s := &EqualStrategy{}

	result, err := s.Calculate(57.31, []int64{42}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{42: 57.31}, result)
}

func TestEqualStrategy_ZeroTotal(t *testing.T) {
	s := &EqualStrategy{}

	result, err := s.Calculate(0, []int64{1, 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 0, 2: 0}, result)
}

func TestEqualStrategy_SumMatchesTotal(t *testing.T) {
	s := &EqualStrategy{}

	totals := []float64{0.01, 0.10, 1.00, 10.07, 99.99, 100.00, 123.45, 1000.01}
	participants := []int64{10, 20, 30, 40, 50, 60, 70}

	for _, total := range totals {
		for n := 1; n <= len(participants); n++ {
			result, err := s.Calculate(total, participants[:n], nil)
			require.NoError(t, err)

			assert.Len(t, result, n)
			assert.InDelta(t, roundToTwoDecimals(total), sumShares(result), 1e-9,
				"total=%v n=%d", total, n)
		}
	}
}

func TestEqualStrategy_InvalidInputs(t *testing.T) {
	s := &EqualStrategy{}

	_, err := s.Calculate(-1.00, []int64{1}, nil)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = s.Calculate(100.00, nil, nil)
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func sumShares(result map[int64]float64) float64 {
	var sum float64
	for _, amount := range result {
		sum += amount
	}
	return roundToTwoDecimals(sum)
}
