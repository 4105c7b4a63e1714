package acl

import (
	"context"
	"fmt"

	"github.com/roamly/objectgw/pkg/objpath"
)

// MetadataStore is the slice of the storage backend the policy store
// needs: reading and writing one object's custom metadata. "Object not
// found" surfaces as an error from these calls; an existing object with
// no policy keys surfaces as empty metadata.
type MetadataStore interface {
	Metadata(ctx context.Context, path objpath.ObjectPath) (map[string]string, error)
	SetMetadata(ctx context.Context, path objpath.ObjectPath, md map[string]string) error
}

// Store reads and writes policies through backend object metadata.
type Store struct {
	backend MetadataStore
}

// NewStore creates a policy store over the given backend.
func NewStore(backend MetadataStore) *Store {
	return &Store{backend: backend}
}

// Get fetches the policy attached to an object. A nil policy with a nil
// error means the object exists but carries no policy.
func (s *Store) Get(ctx context.Context, path objpath.ObjectPath) (*Policy, error) {
	md, err := s.backend.Metadata(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("acl: read policy for %s: %w", path, err)
	}

	p, ok := decodePolicy(md)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Set attaches a policy to an object, replacing any previous one.
func (s *Store) Set(ctx context.Context, path objpath.ObjectPath, policy Policy) error {
	if err := s.backend.SetMetadata(ctx, path, policy.encode()); err != nil {
		return fmt.Errorf("acl: write policy for %s: %w", path, err)
	}
	return nil
}
