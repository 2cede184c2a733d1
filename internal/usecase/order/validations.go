package order

import (
	"reflect"

	"gopkg.in/go-playground/validator.v9"

	"cargodelivery.ru/cargo/internal/entity"
)

func cargo_type(fl validator.FieldLevel) bool {
	if fl.Field().Type().Kind() != reflect.String {
		return false
	}

	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return entity.IsValidCargoType(s)
}
