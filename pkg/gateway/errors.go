package gateway

import (
	"errors"

	"github.com/roamly/objectgw/pkg/objpath"
	"github.com/roamly/objectgw/pkg/signer"
)

// The gateway error taxonomy. Every error leaving this package matches
// exactly one of these via errors.Is.
var (
	// ErrInvalidPath is a malformed bucket/object path. Caller error.
	ErrInvalidPath = objpath.ErrInvalidPath

	// ErrSigning is a credential or broker failure. Never retried.
	ErrSigning = signer.ErrSigning

	// ErrObjectNotFound covers both malformed entity paths and objects
	// that do not exist in the backend.
	ErrObjectNotFound = errors.New("gateway: object not found")

	// ErrAccessDenied is a decision-engine deny, surfaced distinctly
	// from not-found.
	ErrAccessDenied = errors.New("gateway: access denied")

	// ErrInvalidConfig is a construction-time configuration error.
	ErrInvalidConfig = errors.New("gateway: invalid configuration")
)
