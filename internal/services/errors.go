package services

import (
	"errors"
	"fmt"

	apperrors "github.com/tuition-center/center-service/internal/errors"
	"github.com/tuition-center/center-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrStudentNotFound = errors.New("student not found")

	// Persisting derived achievement state failed; the triggering action
	// itself may still have succeeded.
	ErrAchievementSaveFailed = errors.New("failed to save achievement state")

	// Schedule input errors
	ErrInvalidTimeFormat   = errors.New("invalid time format")
	ErrInvalidDayOfWeek    = errors.New("invalid day of week")
	ErrInvalidDuration     = errors.New("invalid session duration")
	ErrSlotCrossesMidnight = errors.New("session would end after midnight")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Err     error                  `json:"-"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error {
	return bre.Err
}

// TimeInputError wraps ErrInvalidTimeFormat with the offending field.
type TimeInputError struct {
	Field string
	Value string
	Err   error
}

func (e *TimeInputError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Field, e.Value)
}

func (e *TimeInputError) Unwrap() error {
	return e.Err
}

// ===== ERROR HELPERS =====

// NewBusinessRuleError reports a broken rule; err is the sentinel it wraps.
func NewBusinessRuleError(rule string, err error, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
		Err:     err,
	}
}

func newTimeInputError(field, value string, err error) *TimeInputError {
	return &TimeInputError{Field: field, Value: value, Err: err}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, repositories.ErrNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrInvalidDayOfWeek) ||
		errors.Is(err, ErrInvalidDuration) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
