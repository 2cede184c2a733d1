package validations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/go-playground/validator.v9"
)

type probe struct {
	Date    string `validate:"omitempty,date_YYYY_MM_DD"`
	Decimal string `validate:"omitempty,positive_decimal"`
}

func newProbeValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	assert.NoError(t, v.RegisterValidation("date_YYYY_MM_DD", YYYY_MM_DD_date))
	assert.NoError(t, v.RegisterValidation("positive_decimal", Positive_decimal))
	return v
}

func TestYYYYMMDDDate(t *testing.T) {

	v := newProbeValidator(t)

	for _, valid := range []string{"2023-06-01", "2023-12-31", "1999-01-01"} {
		assert.NoError(t, v.Struct(probe{Date: valid}), valid)
	}

	for _, invalid := range []string{"2023-13-01", "2023-06-32", "01.06.2023", "2023-6-1", "not a date"} {
		assert.Error(t, v.Struct(probe{Date: invalid}), invalid)
	}
}

func TestPositiveDecimal(t *testing.T) {

	v := newProbeValidator(t)

	for _, valid := range []string{"120.5", "0.01", "100", "0"} {
		assert.NoError(t, v.Struct(probe{Decimal: valid}), valid)
	}

	for _, invalid := range []string{"-1", "-0.5", "1,5", "12.", "abc"} {
		assert.Error(t, v.Struct(probe{Decimal: invalid}), invalid)
	}
}
