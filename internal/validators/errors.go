package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is matched by every [ValidationErrors] value.
	ErrValidation = errors.New("validation failed")

	ErrNoFieldsToUpdate = errors.New("nothing to update")
)

// ValidationErrors maps a form field to its human-readable messages.
type ValidationErrors map[string][]string

// Add appends msg to the messages of field.
func (e ValidationErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Error joins all messages, ordered by field name.
func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(e))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match [ErrValidation].
func (e ValidationErrors) Unwrap() error {
	return ErrValidation
}

// orNil returns nil for an empty set so callers can compare against nil.
func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsValidationErrors extracts the field messages carried by err, if any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verr ValidationErrors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
