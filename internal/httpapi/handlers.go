package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/objectgw/pkg/acl"
	"github.com/roamly/objectgw/pkg/gateway"
	"github.com/roamly/objectgw/pkg/objpath"
	"github.com/roamly/objectgw/pkg/storage"
)

// Upload limits for the server-side path. Larger assets go through the
// signed-URL grant flow instead.
const (
	maxUploadMemory = 8 << 20
	maxUploadSize   = 20 << 20
)

// issueUploadGrant handles POST /api/v1/uploads.
func (h *Handler) issueUploadGrant(w http.ResponseWriter, r *http.Request) {
	grant, err := h.svc.IssueUploadGrant(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"uploadURL":  grant.SignedURL,
		"objectPath": grant.CanonicalPath,
		"expiresAt":  grant.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// upload handles POST /api/v1/objects: a server-side multipart upload
// for small images.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed multipart body"})
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing file field"})
		return
	}

	stored, err := h.svc.Upload(r.Context(), files[0],
		storage.WithValidation(
			storage.NotEmpty(),
			storage.MaxSize(maxUploadSize),
			storage.ImageOnly(),
		),
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"objectPath": stored.CanonicalPath,
	})
}

// download handles GET /api/v1/objects/*: authorize then stream.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "*")

	ref, err := h.svc.ResolveEntity(r.Context(), objpath.CanonicalPrefix+entity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dl, err := h.svc.Download(r.Context(), ref, callerFromRequest(r), ttlFromRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	w.Header().Set("Cache-Control", dl.CacheControl)
	if ext := storage.ExtFromMIME(dl.ContentType); ext != "" {
		w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(entity)+ext+`"`)
	}

	// Headers are committed once bytes flow; a mid-stream failure can
	// only be logged and the connection dropped.
	if _, err := io.Copy(w, dl.Body); err != nil {
		h.log.ErrorContext(r.Context(), "download stream aborted",
			slog.String("object", ref.String()),
			slog.Any("error", err))
	}
}

// remove handles DELETE /api/v1/objects/*: owner or write-holding group
// only.
func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ref, err := h.svc.ResolveEntity(r.Context(), objpath.CanonicalPrefix+chi.URLParam(r, "*"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.Remove(r.Context(), ref, callerFromRequest(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// assignPolicyRequest is the PUT /api/v1/objects/acl body.
type assignPolicyRequest struct {
	ImageURL   string `json:"imageURL"`
	OwnerID    string `json:"ownerId"`
	Visibility string `json:"visibility"`
}

// assignPolicy handles PUT /api/v1/objects/acl.
func (h *Handler) assignPolicy(w http.ResponseWriter, r *http.Request) {
	var req assignPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return
	}
	if req.ImageURL == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "imageURL is required"})
		return
	}

	visibility := acl.Visibility(req.Visibility)
	if !visibility.Valid() {
		visibility = acl.VisibilityPrivate
	}

	canonical, err := h.svc.AssignPolicy(r.Context(), req.ImageURL, acl.Policy{
		Owner:      req.OwnerID,
		Visibility: visibility,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"objectPath": canonical,
	})
}

// publicURL handles GET /api/v1/public/*: locate a public asset across
// the search paths and hand back a time-limited download URL.
func (h *Handler) publicURL(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.LookupPublic(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	signed, err := h.svc.IssueDownloadGrant(r.Context(), path, ttlFromRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"downloadURL": signed,
	})
}

// callerFromRequest reads the identity the upstream auth layer resolved.
// Absent headers mean an anonymous caller.
func callerFromRequest(r *http.Request) acl.Caller {
	caller := acl.Caller{ID: r.Header.Get("X-User-Id")}
	if raw := r.Header.Get("X-User-Groups"); raw != "" {
		for g := range strings.SplitSeq(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				caller.Groups = append(caller.Groups, g)
			}
		}
	}
	return caller
}

// ttlFromRequest reads the optional ttl query parameter (seconds).
func ttlFromRequest(r *http.Request) time.Duration {
	raw := r.URL.Query().Get("ttl")
	if raw == "" {
		return 0
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// writeError maps the gateway taxonomy onto status codes. Denied and
// not-found stay distinct on the wire.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *storage.FileValidationError

	switch {
	case errors.Is(err, gateway.ErrObjectNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]any{"error": "object not found"})
	case errors.Is(err, gateway.ErrAccessDenied):
		h.writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "access denied"})
	case errors.Is(err, gateway.ErrInvalidPath):
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid path"})
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   verr.Message,
			"code":    verr.Code,
			"details": verr.Details,
		})
	case errors.Is(err, storage.ErrEmptyFile):
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "file is empty"})
	default:
		h.log.ErrorContext(r.Context(), "gateway request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

// writeJSON writes a JSON response with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("encode response", slog.Any("error", err))
	}
}
