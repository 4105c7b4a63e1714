package storage

import (
	"context"
	"io"

	"github.com/roamly/objectgw/pkg/objpath"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	// Path is the backend-native address of the object.
	Path objpath.ObjectPath

	// ContentType is the stored MIME type.
	ContentType string

	// Metadata holds the object's custom metadata. Never nil.
	Metadata map[string]string

	// Size is the object size in bytes.
	Size int64
}

// Backend is the storage surface consumed by the gateway. Every call is
// an independent I/O operation; implementations hold no per-object
// state and are safe for concurrent use.
type Backend interface {
	// Exists reports whether the object is present.
	Exists(ctx context.Context, path objpath.ObjectPath) (bool, error)

	// Attrs fetches size, content type, and metadata without reading
	// bytes. Returns ErrNotFound for missing objects.
	Attrs(ctx context.Context, path objpath.ObjectPath) (*ObjectInfo, error)

	// Open starts a streaming read. The caller closes the reader.
	Open(ctx context.Context, path objpath.ObjectPath) (io.ReadCloser, error)

	// Put uploads data through the process (as opposed to a signed-URL
	// direct upload). Options control content type, validation, and
	// public readability.
	Put(ctx context.Context, path objpath.ObjectPath, r io.Reader, size int64, opts ...PutOption) (*ObjectInfo, error)

	// Metadata reads the object's custom metadata. Returns ErrNotFound
	// for missing objects; an object without metadata yields an empty
	// map.
	Metadata(ctx context.Context, path objpath.ObjectPath) (map[string]string, error)

	// SetMetadata replaces the object's custom metadata.
	SetMetadata(ctx context.Context, path objpath.ObjectPath, md map[string]string) error

	// Delete removes the object.
	Delete(ctx context.Context, path objpath.ObjectPath) error
}
