package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Form field names. They double as the keys of [ValidationErrors].
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"

	// FieldBase holds messages that belong to the form as a whole.
	FieldBase = "base"
)

// Limits of the user record.
const (
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MinPasswordLength = 6
	MaxPasswordLength = 40

	// bcrypt rejects secrets longer than 72 bytes.
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-]+(\.[a-z\d\-]+)*\.[a-z]+$`)

var userFields = []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirmation}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkName(errs ValidationErrors, name string) {
	switch {
	case isBlank(name):
		errs.Add(FieldName, "Name can't be blank")
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs.Add(FieldName, fmt.Sprintf("Name is too long (maximum is %d characters)", MaxNameLength))
	}
}

func checkEmail(errs ValidationErrors, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs.Add(FieldEmail, "Email can't be blank")
	case utf8.RuneCountInString(email) > MaxEmailLength:
		errs.Add(FieldEmail, fmt.Sprintf("Email is too long (maximum is %d characters)", MaxEmailLength))
	case !emailPattern.MatchString(email):
		errs.Add(FieldEmail, "Email is invalid")
	}
}

func checkPassword(errs ValidationErrors, password string) {
	n := utf8.RuneCountInString(password)
	switch {
	case password == "":
		errs.Add(FieldPassword, "Password can't be blank")
	case n < MinPasswordLength:
		errs.Add(FieldPassword, fmt.Sprintf("Password is too short (minimum is %d characters)", MinPasswordLength))
	case n > MaxPasswordLength || len(password) > maxPasswordBytes:
		errs.Add(FieldPassword, fmt.Sprintf("Password is too long (maximum is %d characters)", MaxPasswordLength))
	}
}

func checkConfirmation(errs ValidationErrors, password, confirmation string) {
	if password != confirmation {
		errs.Add(FieldPasswordConfirmation, "Password confirmation doesn't match Password")
	}
}

// fieldSet returns the fields to validate: all of them when none are named.
func fieldSet(fields []string) (map[string]bool, error) {
	set := make(map[string]bool, len(userFields))
	if len(fields) == 0 {
		for _, f := range userFields {
			set[f] = true
		}
		return set, nil
	}

	for _, f := range fields {
		known := false
		for _, uf := range userFields {
			if f == uf {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		set[f] = true
	}
	return set, nil
}
