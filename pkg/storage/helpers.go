package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/roamly/objectgw/pkg/objpath"
)

// PutFile uploads a multipart file header to the backend. MIME type is
// detected from magic bytes, not the filename extension. Returns
// ErrEmptyFile if the file is nil or has zero size. If WithValidation is
// used and any rule fails, returns *FileValidationError.
func PutFile(ctx context.Context, b Backend, path objpath.ObjectPath, fh *multipart.FileHeader, opts ...PutOption) (*ObjectInfo, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	// Apply options to check for validation rules.
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}

	// Validate against the detected type before opening the stream for
	// upload, and pin the detected type so Put does not re-detect.
	if len(o.validationRules) > 0 {
		mimeType := DetectMIME(fh)
		if err := Validate(fh.Size, mimeType, o.validationRules...); err != nil {
			return nil, err
		}
		opts = append(opts, WithContentType(mimeType))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open file: %w", err)
	}
	defer f.Close()

	return b.Put(ctx, path, f, fh.Size, opts...)
}
