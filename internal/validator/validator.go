// Package validator provides a custom Validator type for accumulating
// field-level validation errors and returning them as a map.
//
// Struct rules are declared with go-playground/validator tags on the request
// types; Struct runs them and records one message per failing field, keyed by
// the field's JSON name.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// validate is shared; a *playground.Validate caches struct metadata and is
// safe for concurrent use.
var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct validates s against its `validate` tags.
func (v *Validator) Struct(s any) {
	v.StructAt("", s)
}

// StructAt is like Struct but prefixes every key, e.g. "[2]" for the third
// element of a posted collection.
func (v *Validator) StructAt(prefix string, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrors playground.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.AddError(join(prefix, "body"), err.Error())
		return
	}
	for _, fe := range fieldErrors {
		v.AddError(join(prefix, fieldKey(fe)), message(fe))
	}
}

// Unique returns true if every string in values is distinct.
func Unique(values []string) bool {
	seen := make(map[string]bool)
	for _, v := range values {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// fieldKey drops the leading struct name from the error namespace, so
// "AuthorForCreationDto.courses[0].title" becomes "courses[0].title".
func fieldKey(fe playground.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func join(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case strings.HasPrefix(key, "["):
		return prefix + key
	default:
		return prefix + "." + key
	}
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "nefield":
		return fmt.Sprintf("must be different from %s", strings.ToLower(fe.Param()))
	case "gtfield":
		return fmt.Sprintf("must be after %s", splitWords(fe.Param()))
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// splitWords turns "DateOfBirth" into "date of birth".
func splitWords(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
