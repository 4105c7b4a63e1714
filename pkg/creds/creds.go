package creds

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
)

// Sentinel errors for credential construction.
var (
	ErrInvalidKey    = errors.New("creds: invalid private key material")
	ErrMissingConfig = errors.New("creds: incomplete credential configuration")
)

// Fixed local broker endpoints used when no service-account triple is
// configured.
const (
	DefaultTokenEndpoint      = "http://127.0.0.1:4443/token"
	DefaultCredentialEndpoint = "http://127.0.0.1:4443/sign"
)

// Provider is the abstract credential surface consumed by the rest of
// the gateway. Implementations are safe for unbounded concurrent use
// once constructed.
type Provider interface {
	// SignURL produces a signed URL for one object and one HTTP method,
	// valid until the absolute expires instant.
	SignURL(ctx context.Context, bucket, object, method string, expires time.Time) (string, error)

	// TokenSource returns an oauth2 token source for authenticating
	// backend API calls.
	TokenSource(ctx context.Context) oauth2.TokenSource
}

// Config carries the recognized credential settings. A complete
// service-account triple selects ServiceAccount mode; otherwise the
// sidecar broker is used, with empty endpoints falling back to the fixed
// local defaults.
type Config struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string

	TokenEndpoint      string
	CredentialEndpoint string
}

// New selects the credential variant from cfg. Called once at startup;
// the returned Provider is held for the process lifetime.
func New(cfg Config) (Provider, error) {
	if cfg.ProjectID != "" && cfg.ClientEmail != "" && cfg.PrivateKey != "" {
		return NewServiceAccount(cfg.ProjectID, cfg.ClientEmail, cfg.PrivateKey)
	}
	return NewSidecar(cfg.TokenEndpoint, cfg.CredentialEndpoint), nil
}
