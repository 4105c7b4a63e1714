package storage

// PutOption configures Put operations.
type PutOption func(*putOptions)

// putOptions holds configuration for Put operations.
type putOptions struct {
	contentType     string           // Override detected content type
	validationRules []ValidationRule // Checks applied before upload
	publicRead      bool             // Make the object world-readable
}

// WithContentType overrides the auto-detected content type.
// Use sparingly; detection from magic bytes is preferred.
func WithContentType(ct string) PutOption {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithValidation adds validation rules applied before any bytes are
// uploaded. If any rule fails, the upload is aborted and a
// *FileValidationError is returned.
func WithValidation(rules ...ValidationRule) PutOption {
	return func(o *putOptions) {
		o.validationRules = append(o.validationRules, rules...)
	}
}

// WithPublicRead marks the uploaded object world-readable. The default
// is private.
func WithPublicRead() PutOption {
	return func(o *putOptions) {
		o.publicRead = true
	}
}
