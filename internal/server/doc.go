// Package server runs the ledger's transport servers.
//
// It starts the HTTP API and, when configured, the gRPC health server, and
// shuts both down gracefully once the run context is cancelled.
package server
