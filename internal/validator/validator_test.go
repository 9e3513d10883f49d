package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	Day   string  `json:"day_of_week" validate:"required,day_of_week"`
	Delta float64 `json:"delta" validate:"omitempty,cents"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&slotInput{Day: "Saturday", Delta: -2.75}))
	assert.NoError(t, v.Validate(&slotInput{Day: "friday"}))
}

func TestValidate_CustomTags(t *testing.T) {
	v := New()

	err := v.Validate(&slotInput{Day: "funday", Delta: 0.005})
	require.Error(t, err)

	errs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 2)

	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Rule
	}
	assert.Equal(t, "day_of_week", byField["day_of_week"])
	assert.Equal(t, "cents", byField["delta"])
}

func TestValidate_CentsTag(t *testing.T) {
	v := New()

	for _, delta := range []float64{1, 0.1, 0.01, 2.5, -0.3, 19.99, 1234.56} {
		assert.NoError(t, v.Validate(&slotInput{Day: "monday", Delta: delta}), "delta %v", delta)
	}
	for _, delta := range []float64{0.004, 0.005, -0.001, 1.234, 10.0001} {
		assert.Error(t, v.Validate(&slotInput{Day: "monday", Delta: delta}), "delta %v", delta)
	}
}
