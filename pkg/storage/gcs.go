package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/roamly/objectgw/pkg/objpath"
)

// GCS implements Backend over Google Cloud Storage.
type GCS struct {
	client *gcs.Client
}

// New creates a GCS backend authenticating with the given token source.
// A nil token source falls back to application default credentials;
// extra client options are passed through (used by tests to point at an
// emulator).
func New(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*GCS, error) {
	if ts != nil {
		opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &GCS{client: client}, nil
}

// Close releases the underlying client. Call on shutdown.
func (g *GCS) Close() error {
	return g.client.Close()
}

func (g *GCS) object(path objpath.ObjectPath) *gcs.ObjectHandle {
	return g.client.Bucket(path.Bucket).Object(path.Key)
}

// Exists reports whether the object is present.
func (g *GCS) Exists(ctx context.Context, path objpath.ObjectPath) (bool, error) {
	_, err := g.object(path).Attrs(ctx)
	if err != nil {
		wrapped := wrapGCSError(err, ErrMetadataFailed)
		if errors.Is(wrapped, ErrNotFound) {
			return false, nil
		}
		return false, wrapped
	}
	return true, nil
}

// Attrs fetches object attributes without reading bytes.
func (g *GCS) Attrs(ctx context.Context, path objpath.ObjectPath) (*ObjectInfo, error) {
	attrs, err := g.object(path).Attrs(ctx)
	if err != nil {
		return nil, wrapGCSError(err, ErrMetadataFailed)
	}

	md := map[string]string{}
	maps.Copy(md, attrs.Metadata)

	return &ObjectInfo{
		Path:        path,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Metadata:    md,
	}, nil
}

// Open starts a streaming read of the object.
func (g *GCS) Open(ctx context.Context, path objpath.ObjectPath) (io.ReadCloser, error) {
	r, err := g.object(path).NewReader(ctx)
	if err != nil {
		return nil, wrapGCSError(err, ErrNotFound)
	}
	return r, nil
}

// Put uploads data through the process.
func (g *GCS) Put(ctx context.Context, path objpath.ObjectPath, r io.Reader, size int64, opts ...PutOption) (*ObjectInfo, error) {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var contentType string
	var body io.Reader
	if o.contentType != "" {
		contentType, body = o.contentType, r
	} else {
		contentType, body = detectMIMEWithReader(r)
	}

	if len(o.validationRules) > 0 {
		if err := Validate(size, contentType, o.validationRules...); err != nil {
			return nil, err
		}
	}

	// Writes happen against a child context so a failed copy aborts the
	// upload instead of committing a truncated object.
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.object(path).NewWriter(wctx)
	w.ContentType = contentType
	if o.publicRead {
		w.PredefinedACL = "publicRead"
	}

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return nil, wrapGCSError(err, ErrUploadFailed)
	}
	if err := w.Close(); err != nil {
		return nil, wrapGCSError(err, ErrUploadFailed)
	}

	info := &ObjectInfo{
		Path:        path,
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{},
	}
	if attrs := w.Attrs(); attrs != nil {
		info.Size = attrs.Size
	}
	return info, nil
}

// Metadata reads the object's custom metadata.
func (g *GCS) Metadata(ctx context.Context, path objpath.ObjectPath) (map[string]string, error) {
	info, err := g.Attrs(ctx, path)
	if err != nil {
		return nil, err
	}
	return info.Metadata, nil
}

// SetMetadata replaces the object's custom metadata.
func (g *GCS) SetMetadata(ctx context.Context, path objpath.ObjectPath, md map[string]string) error {
	_, err := g.object(path).Update(ctx, gcs.ObjectAttrsToUpdate{Metadata: md})
	if err != nil {
		return wrapGCSError(err, ErrMetadataFailed)
	}
	return nil
}

// Delete removes the object.
func (g *GCS) Delete(ctx context.Context, path objpath.ObjectPath) error {
	if err := g.object(path).Delete(ctx); err != nil {
		return wrapGCSError(err, ErrDeleteFailed)
	}
	return nil
}

// Ensure GCS implements Backend.
var _ Backend = (*GCS)(nil)
