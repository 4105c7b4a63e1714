// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs a set of named checks in parallel under a shared
// timeout and reports per-check status. Handlers answer plain text for
// probes and JSON when the client asks for it (Accept header or
// ?format=json). The gateway wires checks for the storage backend and
// the credential source.
package health
