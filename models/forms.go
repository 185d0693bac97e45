// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupForm carries the fields submitted when creating an account.
type SignupForm struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// EditForm carries the fields submitted when updating an account.
// A nil field was not submitted and must not be touched.
type EditForm struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Password             *string `json:"password,omitempty"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
}

// IsEmpty reports whether no field was submitted.
func (f EditForm) IsEmpty() bool {
	return f.Name == nil && f.Email == nil && f.Password == nil && f.PasswordConfirmation == nil
}

// ChangesPassword reports whether a non-empty password was submitted.
func (f EditForm) ChangesPassword() bool {
	return f.Password != nil && *f.Password != ""
}

// SignInForm carries sign-in credentials.
type SignInForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
