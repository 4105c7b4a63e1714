// Package gateway orchestrates path canonicalization, signed URLs, and
// ACL policies into the object gateway service of the tour app.
//
// The service owns three core operations plus two convenience flows:
//
//   - IssueUploadGrant: mint an entity id and a 15-minute signed PUT URL
//     so clients upload directly to the backend.
//   - Download: resolve an entity, authorize the caller, and stream the
//     bytes with a visibility-matching Cache-Control header.
//   - AssignPolicy: canonicalize a reported upload URL and attach an ACL
//     policy to the stored object.
//   - LookupPublic: find a public asset across the configured search
//     paths.
//   - Upload: server-side upload for small assets that do not go through
//     the grant flow.
//
// An uploaded object moves through Granted (URL issued, object absent),
// Stored (object exists, no policy), PolicyAssigned, and is then subject
// to the access decision on every read. All backend errors are
// translated into the package's sentinel taxonomy before they reach
// callers.
package gateway
