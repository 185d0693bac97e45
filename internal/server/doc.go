// Package server runs the HTTP transport of the user directory until its
// context is cancelled, then shuts it down gracefully.
package server
