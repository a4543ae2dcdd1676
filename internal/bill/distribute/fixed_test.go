package distribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedStrategy_ExactMatch(t *testing.T) {
	s := &FixedStrategy{}

	result, err := s.Calculate(380.00, []int64{1, 2, 3}, map[int64]float64{1: 100, 2: 150, 3: 130})
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 100.00, 2: 150.00, 3: 130.00}, result)
}

func TestFixedStrategy_ScalesDownProportionally(t *testing.T) {
	s := &FixedStrategy{}

	// Fixed amounts sum to 300 but a discount brought the bill to 270:
	// everyone's contribution shrinks by 10%.
	result, err := s.Calculate(270.00, []int64{1, 2, 3}, map[int64]float64{1: 100, 2: 150, 3: 50})
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 90.00, 2: 135.00, 3: 45.00}, result)
	assert.InDelta(t, 270.00, sumShares(result), 1e-9)
}

func TestFixedStrategy_InsufficientFixedTotal(t *testing.T) {
	s := &FixedStrategy{}

	_, err := s.Calculate(300.00, []int64{1, 2}, map[int64]float64{1: 100, 2: 100})
	assert.ErrorIs(t, err, ErrInsufficientFixedTotal)
}

func TestFixedStrategy_SingleParticipant(t *testing.T) {
	s := &FixedStrategy{}

	result, err := s.Calculate(45.50, []int64{9}, map[int64]float64{9: 45.50})
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{9: 45.50}, result)
}

func TestFixedStrategy_ZeroTotalZeroFixed(t *testing.T) {
	s := &FixedStrategy{}

	result, err := s.Calculate(0, []int64{1, 2}, map[int64]float64{1: 0, 2: 0})
	require.NoError(t, err)

	assert.Equal(t, map[int64]float64{1: 0, 2: 0}, result)
}

func TestFixedStrategy_MissingParams(t *testing.T) {
	s := &FixedStrategy{}

	_, err := s.Calculate(100.00, []int64{1, 2}, nil)
	assert.ErrorIs(t, err, ErrMissingParams)

	_, err = s.Calculate(100.00, []int64{1, 2}, map[int64]float64{1: 100})
	assert.ErrorIs(t, err, ErrMissingParticipantParam)
}

func TestFixedStrategy_InvalidInputs(t *testing.T) {
	s := &FixedStrategy{}

	_, err := s.Calculate(-10.00, []int64{1}, map[int64]float64{1: 10})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = s.Calculate(10.00, nil, map[int64]float64{1: 10})
	assert.ErrorIs(t, err, ErrNoParticipants)
}
