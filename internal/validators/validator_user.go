package validators

import (
	"context"

	"github.com/MKhiriev/user-directory/models"
)

// UserValidator validates signup, edit and sign-in forms.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupForm:
		return v.validateSignup(ctx, value, fields...)
	case *models.SignupForm:
		return v.validateSignup(ctx, *value, fields...)

	case models.EditForm:
		return v.validateEdit(ctx, value, fields...)
	case *models.EditForm:
		return v.validateEdit(ctx, *value, fields...)

	case models.SignInForm:
		return v.validateSignIn(ctx, value)
	case *models.SignInForm:
		return v.validateSignIn(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(ctx context.Context, form models.SignupForm, fields ...string) error {
	set, err := fieldSet(fields)
	if err != nil {
		return err
	}

	errs := ValidationErrors{}
	if set[FieldName] {
		checkName(errs, form.Name)
	}
	if set[FieldEmail] {
		checkEmail(errs, form.Email)
	}
	if set[FieldPassword] {
		checkPassword(errs, form.Password)
	}
	if set[FieldPasswordConfirmation] {
		checkConfirmation(errs, form.Password, form.PasswordConfirmation)
	}

	return errs.orNil()
}

// validateEdit checks only submitted fields. The password pair is checked only
// when a non-empty password is submitted.
func (v *UserValidator) validateEdit(ctx context.Context, form models.EditForm, fields ...string) error {
	if form.IsEmpty() {
		errs := ValidationErrors{}
		errs.Add(FieldBase, ErrNoFieldsToUpdate.Error())
		return errs
	}

	set, err := fieldSet(fields)
	if err != nil {
		return err
	}

	errs := ValidationErrors{}
	if set[FieldName] && form.Name != nil {
		checkName(errs, *form.Name)
	}
	if set[FieldEmail] && form.Email != nil {
		checkEmail(errs, *form.Email)
	}
	if form.ChangesPassword() {
		confirmation := ""
		if form.PasswordConfirmation != nil {
			confirmation = *form.PasswordConfirmation
		}
		if set[FieldPassword] {
			checkPassword(errs, *form.Password)
		}
		if set[FieldPasswordConfirmation] {
			checkConfirmation(errs, *form.Password, confirmation)
		}
	}

	return errs.orNil()
}

func (v *UserValidator) validateSignIn(ctx context.Context, form models.SignInForm) error {
	errs := ValidationErrors{}
	if isBlank(form.Email) {
		errs.Add(FieldEmail, "Email can't be blank")
	}
	if form.Password == "" {
		errs.Add(FieldPassword, "Password can't be blank")
	}
	return errs.orNil()
}
