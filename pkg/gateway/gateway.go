package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/objectgw/pkg/acl"
	"github.com/roamly/objectgw/pkg/objpath"
	"github.com/roamly/objectgw/pkg/signer"
	"github.com/roamly/objectgw/pkg/storage"
)

// Grant and download lifetimes.
const (
	// UploadGrantTTL is fixed; expired grants require a fresh request.
	UploadGrantTTL = 900 * time.Second

	// DefaultDownloadTTL applies when the caller does not choose one.
	DefaultDownloadTTL = 3600 * time.Second
)

// uploadsPrefix is the entity-id prefix of granted uploads.
const uploadsPrefix = "uploads"

// Config holds gateway settings.
type Config struct {
	// PrivateDir is the bucket-qualified private object directory,
	// e.g. "/tours-media/.private". Required.
	PrivateDir string

	// PublicPaths are the bucket-qualified directories searched by
	// LookupPublic, in order.
	PublicPaths []string

	// DownloadTTL overrides DefaultDownloadTTL for Cache-Control and
	// download grants when set.
	DownloadTTL time.Duration
}

// Service is the object gateway. Safe for concurrent use; all mutable
// collaborators are fixed at construction.
type Service struct {
	backend  storage.Backend
	issuer   *signer.Issuer
	policies *acl.Store
	codec    *objpath.Codec
	log      *slog.Logger
	cfg      Config
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithClock replaces the grant clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the entity id generator. Test hook.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New creates the gateway service.
func New(cfg Config, backend storage.Backend, issuer *signer.Issuer, policies *acl.Store, codec *objpath.Codec, opts ...Option) (*Service, error) {
	if strings.TrimSuffix(cfg.PrivateDir, "/") == "" {
		return nil, fmt.Errorf("%w: private directory is required", ErrInvalidConfig)
	}
	cfg.PrivateDir = strings.TrimSuffix(cfg.PrivateDir, "/")
	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = DefaultDownloadTTL
	}

	s := &Service{
		backend:  backend,
		issuer:   issuer,
		policies: policies,
		codec:    codec,
		log:      slog.New(slog.DiscardHandler),
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// UploadGrant is a time-limited permission to PUT one object directly
// to the backend.
type UploadGrant struct {
	ObjectPath    objpath.ObjectPath
	SignedURL     string
	Method        string
	ExpiresAt     time.Time
	CanonicalPath string
}

// IssueUploadGrant mints a fresh entity id under the private uploads
// directory and signs a PUT URL for it. The object does not exist on
// the backend until the client completes the upload.
func (s *Service) IssueUploadGrant(ctx context.Context) (*UploadGrant, error) {
	entity := uploadsPrefix + "/" + s.newID()

	path, err := s.codec.Parse(s.cfg.PrivateDir + "/" + entity)
	if err != nil {
		return nil, err
	}

	signed, err := s.issuer.Issue(ctx, path, http.MethodPut, UploadGrantTTL)
	if err != nil {
		return nil, err
	}

	return &UploadGrant{
		ObjectPath:    path,
		SignedURL:     signed,
		Method:        http.MethodPut,
		ExpiresAt:     s.now().Add(UploadGrantTTL),
		CanonicalPath: objpath.CanonicalPrefix + entity,
	}, nil
}

// IssueDownloadGrant signs a GET URL for an already-resolved object.
// A non-positive ttl uses the configured download TTL.
func (s *Service) IssueDownloadGrant(ctx context.Context, path objpath.ObjectPath, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.cfg.DownloadTTL
	}
	return s.issuer.Issue(ctx, path, http.MethodGet, ttl)
}

// ResolveEntity maps a canonical entity path to its backend object and
// confirms it exists. Malformed paths and missing objects both fail
// with ErrObjectNotFound.
func (s *Service) ResolveEntity(ctx context.Context, canonicalPath string) (objpath.ObjectPath, error) {
	entity, ok := objpath.EntityID(canonicalPath)
	if !ok {
		return objpath.ObjectPath{}, fmt.Errorf("%w: %q is not an entity path", ErrObjectNotFound, canonicalPath)
	}

	path, err := s.codec.Parse(s.cfg.PrivateDir + "/" + entity)
	if err != nil {
		return objpath.ObjectPath{}, fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}

	exists, err := s.backend.Exists(ctx, path)
	if err != nil {
		return objpath.ObjectPath{}, fmt.Errorf("gateway: check %s: %w", path, err)
	}
	if !exists {
		return objpath.ObjectPath{}, fmt.Errorf("%w: %s", ErrObjectNotFound, canonicalPath)
	}

	return path, nil
}

// AssignPolicy canonicalizes a reported upload URL or path, resolves
// the stored object, and attaches the policy. Inputs that never were
// internal entity references are returned unchanged without touching
// the backend.
func (s *Service) AssignPolicy(ctx context.Context, rawURLOrPath string, policy acl.Policy) (string, error) {
	canonical := s.codec.Normalize(rawURLOrPath)
	if !objpath.IsCanonical(canonical) {
		return rawURLOrPath, nil
	}

	path, err := s.ResolveEntity(ctx, canonical)
	if err != nil {
		return "", err
	}

	if err := s.policies.Set(ctx, path, policy); err != nil {
		return "", s.translate(err)
	}

	s.log.InfoContext(ctx, "policy assigned",
		slog.String("object", path.String()),
		slog.String("owner", policy.Owner),
		slog.String("visibility", string(policy.Visibility)))

	return canonical, nil
}

// LookupPublic searches the configured public paths in order and
// returns the first existing object named name.
func (s *Service) LookupPublic(ctx context.Context, name string) (objpath.ObjectPath, error) {
	if len(s.cfg.PublicPaths) == 0 {
		return objpath.ObjectPath{}, fmt.Errorf("%w: no public search paths configured", ErrInvalidConfig)
	}

	name = strings.TrimPrefix(name, "/")
	for _, dir := range s.cfg.PublicPaths {
		path, err := s.codec.Parse(strings.TrimSuffix(dir, "/") + "/" + name)
		if err != nil {
			return objpath.ObjectPath{}, err
		}

		exists, err := s.backend.Exists(ctx, path)
		if err != nil {
			return objpath.ObjectPath{}, fmt.Errorf("gateway: check %s: %w", path, err)
		}
		if exists {
			return path, nil
		}
	}

	return objpath.ObjectPath{}, fmt.Errorf("%w: %q not under any public path", ErrObjectNotFound, name)
}

// StoredObject is the result of a server-side upload.
type StoredObject struct {
	Info          *storage.ObjectInfo
	CanonicalPath string
}

// Upload stores a multipart file under a fresh entity id without going
// through the grant flow. Used for small assets posted directly to the
// app.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader, opts ...storage.PutOption) (*StoredObject, error) {
	entity := uploadsPrefix + "/" + s.newID()

	path, err := s.codec.Parse(s.cfg.PrivateDir + "/" + entity)
	if err != nil {
		return nil, err
	}

	info, err := storage.PutFile(ctx, s.backend, path, fh, opts...)
	if err != nil {
		return nil, s.translate(err)
	}

	return &StoredObject{
		Info:          info,
		CanonicalPath: objpath.CanonicalPrefix + entity,
	}, nil
}

// Download authorizes the caller against the object's policy and opens
// a byte stream. The access decision happens before any bytes move; a
// non-positive ttl uses the configured download TTL for Cache-Control.
func (s *Service) Download(ctx context.Context, path objpath.ObjectPath, caller acl.Caller, ttl time.Duration) (*Download, error) {
	if ttl <= 0 {
		ttl = s.cfg.DownloadTTL
	}

	info, err := s.backend.Attrs(ctx, path)
	if err != nil {
		return nil, s.translate(err)
	}

	policy, err := s.policies.Get(ctx, path)
	if err != nil {
		return nil, s.translate(err)
	}

	if !acl.CanAccess(caller, policy, acl.PermissionRead) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}

	body, err := s.backend.Open(ctx, path)
	if err != nil {
		return nil, s.translate(err)
	}

	return &Download{
		Body:         body,
		Size:         info.Size,
		ContentType:  info.ContentType,
		Visibility:   policy.Visibility,
		CacheControl: fmt.Sprintf("%s, max-age=%d", policy.Visibility, int(ttl.Seconds())),
	}, nil
}

// Remove deletes an object after a write check against its policy.
// Only the owner or a group holding write may remove; an object with no
// policy cannot be removed through the gateway at all.
func (s *Service) Remove(ctx context.Context, path objpath.ObjectPath, caller acl.Caller) error {
	if _, err := s.backend.Attrs(ctx, path); err != nil {
		return s.translate(err)
	}

	policy, err := s.policies.Get(ctx, path)
	if err != nil {
		return s.translate(err)
	}

	if !acl.CanAccess(caller, policy, acl.PermissionWrite) {
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}

	if err := s.backend.Delete(ctx, path); err != nil {
		return s.translate(err)
	}

	s.log.InfoContext(ctx, "object removed",
		slog.String("object", path.String()),
		slog.String("caller", caller.ID))
	return nil
}

// Download is an authorized, ready-to-stream object read. The caller
// owns Body and must close it.
type Download struct {
	Body         io.ReadCloser
	ContentType  string
	CacheControl string
	Visibility   acl.Visibility
	Size         int64
}

// translate folds backend errors into the gateway taxonomy so no
// storage-layer kind reaches callers unmapped.
func (s *Service) translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	return err
}
