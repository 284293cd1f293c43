// Package http implements the HTTP transport layer of the ledger.
//
// Every request passes through trace-id injection, access logging and the
// authentication gate before the per-route authority check. Routes are
// declared once in the route policy table; a route without a policy is a
// startup error.
package http
