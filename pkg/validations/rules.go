package validations

import (
	"regexp"

	"gopkg.in/go-playground/validator.v9"
)

var dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

func YYYY_MM_DD_date(fl validator.FieldLevel) bool {

	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return dateRe.MatchString(value)
}

var decimalRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Positive_decimal accepts a decimal number serialized as a string,
// e.g. cargo dimensions "120.5".
func Positive_decimal(fl validator.FieldLevel) bool {

	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return decimalRe.MatchString(value)
}
