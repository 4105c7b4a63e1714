// Package storage wraps the Google Cloud Storage backend behind the
// narrow surface the object gateway needs: existence checks, attribute
// reads, byte streaming, server-side uploads, and custom-metadata
// reads/writes.
//
// All backend errors are translated into the package's sentinel errors
// at this boundary; no SDK error type escapes to callers. Check with
// errors.Is:
//
//	info, err := backend.Attrs(ctx, path)
//	if errors.Is(err, storage.ErrNotFound) { ... }
//
// Uploads can validate size and MIME type before any bytes reach the
// backend:
//
//	info, err := backend.Put(ctx, path, r, size,
//		storage.WithValidation(storage.MaxSize(5<<20), storage.ImageOnly()),
//	)
//
// MIME types are detected from magic bytes, never from filenames.
package storage
