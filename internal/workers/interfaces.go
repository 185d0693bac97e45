// Package workers runs the background jobs of the user directory.
// It defines the Worker interface and a Workers aggregate that starts every
// configured worker in a unified way.
package workers

import "context"

// Worker is a background job.
//
// Run starts the job and returns immediately; the job stops once ctx is
// cancelled.
type Worker interface {
	Run(ctx context.Context)
}
