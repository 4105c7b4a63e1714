// Package signer issues time-bounded, method-scoped signed URLs for
// backend objects.
//
// The issuer is oblivious to which credential variant is active: it
// converts a caller-relative TTL into an absolute expiry instant and
// delegates to creds.Provider. Every issued URL is single-purpose — one
// HTTP method, one object — and expires at the instant it encodes;
// expiry is enforced by the backend, not here.
package signer
