package models

import "time"

// User represents a directory account.
// PasswordHash holds a one-way derived value and is never exposed via JSON.
type User struct {
	// ID is the store-assigned identifier. Immutable once assigned.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is unique across all users, compared case-insensitively.
	Email string `json:"email"`

	// PasswordHash is the credential hash derived from the user's secret.
	PasswordHash string `json:"-"`

	// CreatedAt is set once, when the record is created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt changes on every successful update.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of a [User]. Nil fields are left unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update carries no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil
}

// Apply returns a copy of user with the non-nil fields of u written over it.
func (u UserUpdate) Apply(user User) User {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	return user
}
