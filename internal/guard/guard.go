// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package guard decides which session may view or mutate which user record.
// Every function is pure: it consults only the session context and the
// target id. Nothing is fetched, so a denial reveals nothing about whether
// the target exists.
package guard

import "github.com/MKhiriev/user-directory/internal/session"

// Decision is the verdict of [CanMutate].
type Decision int

const (
	Permit Decision = iota
	DenyUnauthenticated
	DenyWrongOwner
)

// String implements [fmt.Stringer].
func (d Decision) String() string {
	switch d {
	case Permit:
		return "permit"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyWrongOwner:
		return "deny_wrong_owner"
	default:
		return "unknown"
	}
}

// CanView gates the user listing: signed-in sessions only.
func CanView(sc session.Context) bool {
	return sc.IsSignedIn()
}

// CanViewProfile gates a single profile. Profiles are public.
func CanViewProfile(sc session.Context, targetID int64) bool {
	return true
}

// CanMutate gates edit and update of targetID. There is no admin override.
func CanMutate(sc session.Context, targetID int64) Decision {
	currentID, ok := sc.CurrentUserID()
	if !ok {
		return DenyUnauthenticated
	}
	if currentID != targetID {
		return DenyWrongOwner
	}
	return Permit
}
