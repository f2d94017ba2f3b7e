package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/idelchi/gogen/pkg/validator"
)

//nolint:gochecknoglobals // validators are safe for concurrent use and expensive to build
var validate = sync.OnceValue(newValidator)

func newValidator() *validator.Validator {
	v := validator.NewValidator()

	if err := registerExclusive(v); err != nil {
		panic(err)
	}

	if err := registerEither(v); err != nil {
		panic(err)
	}

	return v
}

// Fields names the struct fields a command validates, on top of FieldsGlobal.
type Fields []string

// Validate checks the configuration. A Fields target checks the global
// settings plus the named fields; any other target is validated as a struct.
func (c *Config) Validate(target any) error {
	var err error

	switch t := target.(type) {
	case Fields:
		err = validate().Validator().StructPartial(c, append(append([]string{}, FieldsGlobal...), t...)...)
	default:
		err = validate().Validator().Struct(target)
	}

	if err == nil {
		return nil
	}

	return errors.Join(validate().FormatErrors(err)...)
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive.
// It registers both the validation logic and a human-readable error message.
func registerExclusive(v *validator.Validator) error {
	if err := v.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive with {1}",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// registerEither adds a custom validator requiring a field or its sibling to be set.
func registerEither(v *validator.Validator) error {
	if err := v.RegisterValidationAndTranslation(
		"either",
		validateEither,
		"one of {0} or {1} is required",
	); err != nil {
		return fmt.Errorf("registering either validation: %w", err)
	}

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := sibling(fl.Parent(), fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && other.Kind() == reflect.String {
		return field.String() == "" || other.String() == ""
	}

	return true
}

// validateEither returns false if neither the field nor its sibling is set.
func validateEither(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := sibling(fl.Parent(), fl.Param())

	if field.Kind() != reflect.String || !other.IsValid() || other.Kind() != reflect.String {
		return true
	}

	return field.String() != "" || other.String() != ""
}

// sibling looks up a field of parent by flag label, then by field name.
func sibling(parent reflect.Value, name string) reflect.Value {
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}

	if parent.Kind() != reflect.Struct {
		return reflect.Value{}
	}

	typ := parent.Type()

	for i := range typ.NumField() {
		if typ.Field(i).Tag.Get("label") == name {
			return parent.Field(i)
		}
	}

	return parent.FieldByName(name)
}
