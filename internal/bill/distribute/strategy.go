package distribute

import (
	"errors"
	"fmt"
	"math"
)

// Mode identifies a cost distribution algorithm.
type Mode string

const (
	ModeEqual      Mode = "EQUAL"
	ModePercentage Mode = "PERCENTAGE"
	ModeFixed      Mode = "FIXED"
)

// Strategy is the interface all distribution strategies implement.
// Calculate returns exactly one amount per requested participant, each
// rounded to two decimals. Params carries the per-participant values a mode
// needs (percentages, fixed amounts) and is ignored by modes that need none.
type Strategy interface {
	// Calculate computes how much each participant owes
	Calculate(totalAmount float64, participants []int64, params map[int64]float64) (map[int64]float64, error)

	// Mode returns the mode identifier for this strategy
	Mode() Mode

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, participants []int64, params map[int64]float64) error
}

// Factory creates distribution strategies based on the requested mode
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation for the mode
func (f *Factory) Create(mode Mode) (Strategy, error) {
	switch mode {
	case ModeEqual:
		return &EqualStrategy{}, nil
	case ModePercentage:
		return &PercentageStrategy{}, nil
	case ModeFixed:
		return &FixedStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// CreateFromString creates a strategy from a raw mode string (useful for API requests)
func (f *Factory) CreateFromString(mode string) (Strategy, error) {
	return f.Create(Mode(mode))
}

var (
	ErrNegativeAmount          = errors.New("total amount cannot be negative")
	ErrNoParticipants          = errors.New("at least one participant is required")
	ErrMissingParams           = errors.New("distribution parameters are required")
	ErrMissingParticipantParam = errors.New("no distribution parameter for participant")
	ErrPercentageSum           = errors.New("percentage shares must sum to 100")
	ErrInsufficientFixedTotal  = errors.New("fixed amounts cannot cover the total amount")
	ErrUnknownMode             = errors.New("unknown distribution mode")
)

// roundToTwoDecimals rounds a float to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// validateCommon checks the inputs every mode requires
func validateCommon(totalAmount float64, participants []int64) error {
	if totalAmount < 0 {
		return ErrNegativeAmount
	}
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	return nil
}

// validateParams checks that every requested participant has a parameter entry
func validateParams(participants []int64, params map[int64]float64) error {
	if len(params) == 0 {
		return ErrMissingParams
	}
	for _, id := range participants {
		if _, ok := params[id]; !ok {
			return fmt.Errorf("%w %d", ErrMissingParticipantParam, id)
		}
	}
	return nil
}
