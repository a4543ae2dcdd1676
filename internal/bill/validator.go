package bill

import (
	"fmt"
	"strings"
	"time"
)

// FieldError names a single invalid field on a bill request
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field errors for a rejected request
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks bill data before it reaches the repository.
// It holds no state; all rules are in Validate.
type Validator struct{}

// NewValidator creates a new bill validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a create request and returns all field errors found
func (v *Validator) Validate(req *CreateBillRequest) []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	} else if len(title) > 255 {
		errs = append(errs, FieldError{"title", "Title cannot exceed 255 characters"})
	}

	if req.Amount <= 0 {
		errs = append(errs, FieldError{"amount", "Amount must be greater than zero"})
	}

	if req.HouseholdID <= 0 {
		errs = append(errs, FieldError{"household_id", "Household ID is required"})
	}

	if req.Category != nil && !contains(ValidCategories, *req.Category) {
		errs = append(errs, FieldError{"category",
			fmt.Sprintf("Category must be one of: %s", strings.Join(ValidCategories, ", "))})
	}

	if req.IsRecurring {
		if req.Frequency == nil || *req.Frequency == "" {
			errs = append(errs, FieldError{"frequency", "Frequency is required for recurring bills"})
		} else if !contains(ValidFrequencies, *req.Frequency) {
			errs = append(errs, FieldError{"frequency",
				fmt.Sprintf("Frequency must be one of: %s", strings.Join(ValidFrequencies, ", "))})
		}
	}

	if req.DueDate != nil && *req.DueDate != "" {
		if _, err := time.Parse("2006-01-02", *req.DueDate); err != nil {
			errs = append(errs, FieldError{"due_date", "Due date must be in YYYY-MM-DD format"})
		}
	}

	return errs
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
