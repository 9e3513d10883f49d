package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("delta", "must not be 0", 0)

	assert.Equal(t, "delta", err.Field)
	assert.Equal(t, "must not be 0", err.Message)
	assert.Equal(t, 0, err.Value)
	assert.Equal(t, "validation error on field 'delta': must not be 0", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("hour", "is required", nil))
	assert.Equal(t, "validation failed: hour is required", errs.Error())

	errs = append(errs, *NewValidationError("minute", "is required", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestValidationErrors_Fields(t *testing.T) {
	errs := ValidationErrors{{Field: "hour"}, {Field: "meridiem"}}
	assert.Equal(t, []string{"hour", "meridiem"}, errs.Fields())
}

func TestMessageForOneOf(t *testing.T) {
	type input struct {
		Meridiem string `validate:"oneof=AM PM"`
	}

	errs := ToValidationErrors(validator.New().Struct(input{Meridiem: "XM"}))
	require.Len(t, errs, 1)
	assert.Equal(t, "must be one of: AM, PM", errs[0].Message)
}

func TestToValidationErrors(t *testing.T) {
	type bonusRequest struct {
		Reason string  `validate:"required"`
		Delta  float64 `validate:"ne=0"`
	}

	v := validator.New()
	err := v.Struct(bonusRequest{})
	require.Error(t, err)

	errs := ToValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Reason", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "required", errs[0].Rule)
	assert.Equal(t, "must not be 0", errs[1].Message)
}

func TestToValidationErrors_NonValidatorError(t *testing.T) {
	assert.Empty(t, ToValidationErrors(assert.AnError))
}
