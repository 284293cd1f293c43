// Package workers runs the ledger's background workers.
// It defines the Worker interface and a Workers aggregate that runs
// several workers side by side until their context is cancelled.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled and
// returns nil on a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// StatusReporter receives the outcome of each health check.
type StatusReporter interface {
	SetServing(serving bool)
}
