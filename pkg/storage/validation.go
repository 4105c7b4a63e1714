package storage

import (
	"fmt"
)

// FileValidationError represents an upload validation failure.
type FileValidationError struct {
	Details map[string]any // Error-specific data
	Field   string         // Form field name (e.g., "file")
	Code    string         // Error code (e.g., "file_too_large", "invalid_mime")
	Message string         // Human-readable message
}

// Error implements the error interface.
func (e *FileValidationError) Error() string {
	return e.Message
}

// Error codes for FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationRule defines a check applied to an upload before any bytes
// reach the backend.
type ValidationRule interface {
	// Validate checks the declared size and detected MIME type and
	// returns an error if the upload must be rejected.
	Validate(size int64, mimeType string) error
}

// Validate runs all rules in order and returns the first failure, or
// nil if all pass. The mimeType should be pre-detected from magic bytes.
func Validate(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// maxSizeRule rejects uploads above a byte limit.
type maxSizeRule struct {
	maxBytes int64
}

// MaxSize returns a rule that rejects uploads larger than the given size.
func MaxSize(bytes int64) ValidationRule {
	return &maxSizeRule{maxBytes: bytes}
}

// Validate implements ValidationRule.
func (r *maxSizeRule) Validate(size int64, _ string) error {
	if size > r.maxBytes {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, r.maxBytes),
			Details: map[string]any{
				"limit": r.maxBytes,
				"got":   size,
			},
		}
	}
	return nil
}

// notEmptyRule rejects empty uploads.
type notEmptyRule struct{}

// NotEmpty returns a rule that rejects empty uploads.
func NotEmpty() ValidationRule {
	return &notEmptyRule{}
}

// Validate implements ValidationRule.
func (r *notEmptyRule) Validate(size int64, _ string) error {
	if size == 0 {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeEmptyFile,
			Message: "file is empty",
			Details: map[string]any{},
		}
	}
	return nil
}

// allowedTypesRule validates MIME type against allowed patterns.
type allowedTypesRule struct {
	patterns []string
}

// AllowedTypes returns a rule that only accepts uploads matching the
// given MIME patterns. Supports wildcards like "image/*".
func AllowedTypes(patterns ...string) ValidationRule {
	return &allowedTypesRule{patterns: patterns}
}

// Validate implements ValidationRule.
func (r *allowedTypesRule) Validate(_ int64, mimeType string) error {
	if !matchesMIME(mimeType, r.patterns) {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not allowed", mimeType),
			Details: map[string]any{
				"type":    mimeType,
				"allowed": r.patterns,
			},
		}
	}
	return nil
}

// imageOnlyRule accepts only the image formats the app serves.
type imageOnlyRule struct{}

// ImageOnly returns a rule that only accepts recognized image uploads.
// Stricter than AllowedTypes("image/*"): unknown image subtypes are
// rejected too.
func ImageOnly() ValidationRule {
	return imageOnlyRule{}
}

// Validate implements ValidationRule.
func (imageOnlyRule) Validate(_ int64, mimeType string) error {
	if !IsImageMIME(mimeType) {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not a supported image", mimeType),
			Details: map[string]any{"type": mimeType},
		}
	}
	return nil
}
