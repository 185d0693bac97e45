// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks submitted account forms against the user record
// rules before anything reaches the store.
//
// A failed validation returns [ValidationErrors], a field -> messages map that
// the account service echoes back into the re-rendered form. It unwraps to
// [ErrValidation].
package validators

import "context"

// Validator validates an input value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
