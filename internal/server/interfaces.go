package server

import "context"

// Server defines the lifecycle contract for transport servers managed by this
// package.
type Server interface {
	// Run serves requests until ctx is cancelled or serving fails, then shuts
	// the server down. A clean shutdown returns nil.
	Run(ctx context.Context) error
}
