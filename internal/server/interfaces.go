package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// RunServer starts serving and blocks until ctx is cancelled or a
	// listener fails.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server within ctx's deadline.
	Shutdown(ctx context.Context)
}
