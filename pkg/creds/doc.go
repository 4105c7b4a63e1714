// Package creds selects and holds the process-wide signing credentials
// for the object storage backend.
//
// Exactly one of two variants is active per process, chosen once at
// startup and never switched:
//
//   - ServiceAccount: an embedded service-account identity (project id,
//     client email, private key) that signs URLs natively.
//   - Sidecar: a co-located credential broker reached over fixed local
//     endpoints, used where no key material is mounted into the process.
//
// Callers never branch on the variant. Both satisfy Provider, which
// exposes only the abstract signing and token operations:
//
//	provider, err := creds.New(creds.Config{
//		ProjectID:   os.Getenv("GCS_PROJECT_ID"),
//		ClientEmail: os.Getenv("GCS_CLIENT_EMAIL"),
//		PrivateKey:  os.Getenv("GCS_PRIVATE_KEY"),
//	})
//
// Key material may arrive as raw PEM, PEM with escaped newlines, or
// base64-encoded PEM; it is normalized before use. Undecodable keys are
// a construction-time error, never a per-request one.
package creds
