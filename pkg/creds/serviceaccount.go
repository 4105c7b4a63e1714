package creds

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// storageScope grants full object access; narrower scopes cannot write
// object metadata.
const storageScope = "https://www.googleapis.com/auth/devstorage.full_control"

// ServiceAccount signs URLs directly with an embedded private key.
type ServiceAccount struct {
	projectID   string
	clientEmail string
	privateKey  []byte
}

// NewServiceAccount builds the service-account variant. The key goes
// through normalizeKey; malformed material fails here, at startup.
func NewServiceAccount(projectID, clientEmail, privateKey string) (*ServiceAccount, error) {
	if projectID == "" || clientEmail == "" {
		return nil, fmt.Errorf("%w: project id and client email are required", ErrMissingConfig)
	}

	key, err := normalizeKey(privateKey)
	if err != nil {
		return nil, err
	}

	return &ServiceAccount{
		projectID:   projectID,
		clientEmail: clientEmail,
		privateKey:  key,
	}, nil
}

// ProjectID returns the configured project.
func (s *ServiceAccount) ProjectID() string { return s.projectID }

// SignURL produces a V4-signed URL using the embedded key.
func (s *ServiceAccount) SignURL(_ context.Context, bucket, object, method string, expires time.Time) (string, error) {
	return storage.SignedURL(bucket, object, &storage.SignedURLOptions{
		GoogleAccessID: s.clientEmail,
		PrivateKey:     s.privateKey,
		Method:         method,
		Expires:        expires,
		Scheme:         storage.SigningSchemeV4,
	})
}

// TokenSource returns a JWT-based source minting tokens from the
// embedded key.
func (s *ServiceAccount) TokenSource(ctx context.Context) oauth2.TokenSource {
	conf := &jwt.Config{
		Email:      s.clientEmail,
		PrivateKey: s.privateKey,
		Scopes:     []string{storageScope},
		TokenURL:   google.JWTTokenURL,
	}
	return conf.TokenSource(ctx)
}

var _ Provider = (*ServiceAccount)(nil)
