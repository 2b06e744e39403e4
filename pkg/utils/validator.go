package utils

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// MessageProvider lets a request type override the default message for a
// field. Keys are "field.tag" for a single rule or "field" for every rule on
// that field; field names follow the json tags.
type MessageProvider interface {
	ValidationMessages() map[string]string
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "accepted", accepted)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// accepted requires a checkbox-style boolean to be strictly true.
func accepted(fl validator.FieldLevel) bool {
	field := fl.Field()
	return field.Kind() == reflect.Bool && field.Bool()
}

// ValidateStruct returns one message per failing field, or nil. Every field
// is checked; failures are not short-circuited across fields.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var overrides map[string]string
	if mp, ok := data.(MessageProvider); ok {
		overrides = mp.ValidationMessages()
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err, overrides)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError, overrides map[string]string) string {
	if msg, ok := overrides[err.Field()+"."+err.Tag()]; ok {
		return msg
	}
	if msg, ok := overrides[err.Field()]; ok {
		return msg
	}

	switch err.Tag() {
	case "required", "notblank":
		return "Ce champ est obligatoire"
	case "max":
		return fmt.Sprintf("La longueur maximale est de %s caractères", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Doit être l'une des valeurs : %s", options)
	case "accepted":
		return "Ce champ doit être accepté"
	default:
		return fmt.Sprintf("Champ %s invalide", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
