package objpath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath indicates a raw path that cannot be resolved to a bucket
// and object key.
var ErrInvalidPath = errors.New("objpath: invalid path")

// CanonicalPrefix is the prefix of every canonical entity path.
const CanonicalPrefix = "/objects/"

// ObjectPath is a backend-native object address. Key never carries a
// leading slash.
type ObjectPath struct {
	Bucket string
	Key    string
}

// String returns the slash-joined form used in logs and cache keys.
func (p ObjectPath) String() string {
	return p.Bucket + "/" + p.Key
}

// defaultPrivateMarker is the private-dir leaf assumed when no private
// directory is configured.
const defaultPrivateMarker = ".private"

// Config holds codec settings.
type Config struct {
	// DefaultBucket enables single-bucket remapping: a raw path whose
	// bucket position holds a known marker is rewritten so the marker
	// becomes a key prefix inside this bucket.
	DefaultBucket string

	// PrivateDir is the bucket-qualified directory holding private
	// entities, e.g. "/tours-media/.private". Required for Normalize to
	// produce canonical entity paths.
	PrivateDir string
}

// Codec converts raw paths and URLs to object addresses and canonical
// entity paths.
type Codec struct {
	defaultBucket string
	privateDir    string

	// markers are directory names that may appear in the bucket
	// position of a raw path when a single default bucket is in use.
	// A table rather than a pattern so remapping stays deterministic:
	// the configured private-dir leaf plus "public".
	markers map[string]struct{}
}

// New creates a Codec from cfg.
func New(cfg Config) *Codec {
	c := &Codec{
		defaultBucket: cfg.DefaultBucket,
		privateDir:    strings.TrimSuffix(cfg.PrivateDir, "/"),
	}

	private := defaultPrivateMarker
	if i := strings.LastIndexByte(c.privateDir, '/'); i >= 0 && i+1 < len(c.privateDir) {
		private = c.privateDir[i+1:]
	}
	c.markers = map[string]struct{}{
		private:  {},
		"public": {},
	}
	return c
}

// Parse resolves a raw path or bucket URL to an ObjectPath. The first
// path segment is the bucket, the remainder the object key. Fewer than
// two segments is ErrInvalidPath, never a partial result.
func (c *Codec) Parse(raw string) (ObjectPath, error) {
	p := stripHost(raw)
	p, _, _ = strings.Cut(p, "?")
	p = strings.TrimPrefix(p, "/")

	bucket, key, ok := strings.Cut(p, "/")
	if !ok || bucket == "" || key == "" {
		return ObjectPath{}, fmt.Errorf("%w: %q needs a bucket and an object key", ErrInvalidPath, raw)
	}

	if c.defaultBucket != "" {
		if _, marker := c.markers[bucket]; marker {
			return ObjectPath{Bucket: c.defaultBucket, Key: bucket + "/" + key}, nil
		}
	}

	return ObjectPath{Bucket: bucket, Key: key}, nil
}

// Normalize maps a raw path or bucket URL to its canonical entity path.
// Paths under the configured private directory become "/objects/..."
// paths; anything else is returned as-is after host and query stripping,
// since it never addressed an internal entity.
func (c *Codec) Normalize(raw string) string {
	p := stripHost(raw)
	p, _, _ = strings.Cut(p, "?")

	// The private dir is bucket-qualified, so it must be matched before
	// any default-bucket prefix is stripped, and in its bucket-relative
	// form after each strip.
	if rest, ok := c.cutPrivateDir(p); ok {
		return CanonicalPrefix + rest
	}

	if c.defaultBucket != "" {
		prefix := "/" + c.defaultBucket + "/"
		for strings.HasPrefix(p, prefix) {
			p = "/" + strings.TrimPrefix(p, prefix)
			if rest, ok := c.cutPrivateDir(p); ok {
				return CanonicalPrefix + rest
			}
		}
	}

	return p
}

// cutPrivateDir cuts the configured private directory off p, trying the
// bucket-qualified form first and, under a default bucket, the
// bucket-relative form too.
func (c *Codec) cutPrivateDir(p string) (string, bool) {
	if c.privateDir == "" {
		return "", false
	}
	if rest, ok := strings.CutPrefix(p, c.privateDir+"/"); ok {
		return rest, true
	}
	if c.defaultBucket != "" {
		if tail, ok := strings.CutPrefix(c.privateDir, "/"+c.defaultBucket+"/"); ok {
			if rest, ok := strings.CutPrefix(p, "/"+tail+"/"); ok {
				return rest, true
			}
		}
	}
	return "", false
}

// IsCanonical reports whether p is a canonical entity path.
func IsCanonical(p string) bool {
	return strings.HasPrefix(p, CanonicalPrefix)
}

// EntityID extracts the entity id from a canonical path. The second
// return value is false when p is not canonical or the id is empty.
func EntityID(p string) (string, bool) {
	id, ok := strings.CutPrefix(p, CanonicalPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// stripHost removes the scheme and host of a bucket-style URL, leaving
// the path. Non-URL inputs pass through untouched.
func stripHost(raw string) string {
	_, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return "/"
}
