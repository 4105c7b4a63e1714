package signer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/roamly/objectgw/pkg/creds"
	"github.com/roamly/objectgw/pkg/objpath"
)

// Sentinel errors.
var (
	// ErrSigning indicates a credential or broker failure while signing.
	// Never retried automatically.
	ErrSigning = errors.New("signer: signing failed")

	// ErrUnsupportedMethod rejects methods outside the signable set.
	ErrUnsupportedMethod = errors.New("signer: unsupported method")
)

// signableMethods is the complete set of methods a URL may be scoped to.
var signableMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPut:    {},
	http.MethodDelete: {},
	http.MethodHead:   {},
}

// Issuer produces signed URLs through the active credential provider.
type Issuer struct {
	provider creds.Provider
	now      func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces the issuance clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// New creates an Issuer backed by the given provider.
func New(provider creds.Provider, opts ...Option) *Issuer {
	i := &Issuer{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs one object for one method, valid for ttl from now. The TTL
// is relative to issuance time regardless of the credential variant.
func (i *Issuer) Issue(ctx context.Context, path objpath.ObjectPath, method string, ttl time.Duration) (string, error) {
	method = strings.ToUpper(method)
	if _, ok := signableMethods[method]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%w: non-positive ttl %s", ErrSigning, ttl)
	}

	signed, err := i.provider.SignURL(ctx, path.Bucket, path.Key, method, i.now().Add(ttl))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return signed, nil
}
