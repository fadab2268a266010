package validator

import (
	"fmt"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate *val.Validate

// enumer is implemented by the status enums of the domain models.
type enumer interface {
	Valid() bool
}

var enumerType = reflect.TypeOf((*enumer)(nil)).Elem()

// validateDate accepts a YYYY-MM-DD calendar date.
func validateDate(fl val.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, value)

	return err == nil
}

// validateEnum calls Valid() on fields whose type declares it.
func validateEnum(fl val.FieldLevel) bool {
	field := fl.Field()

	if field.Type().Implements(enumerType) {
		e, _ := field.Interface().(enumer)

		return e.Valid()
	}

	if field.CanAddr() && field.Addr().Type().Implements(enumerType) {
		e, _ := field.Addr().Interface().(enumer)

		return e.Valid()
	}

	return false
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := validate.RegisterValidation("date", validateDate); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("enum", validateEnum); err != nil {
		panic(err)
	}

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
