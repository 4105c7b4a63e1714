package creds

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_variantSelection(t *testing.T) {
	t.Parallel()

	t.Run("complete triple selects service account", func(t *testing.T) {
		t.Parallel()

		p, err := New(Config{
			ProjectID:   "tours-prod",
			ClientEmail: "gateway@tours-prod.iam.gserviceaccount.com",
			PrivateKey:  rsaTestKey(t),
		})
		require.NoError(t, err)
		assert.IsType(t, (*ServiceAccount)(nil), p)
	})

	t.Run("missing key selects sidecar", func(t *testing.T) {
		t.Parallel()

		p, err := New(Config{
			ProjectID:   "tours-prod",
			ClientEmail: "gateway@tours-prod.iam.gserviceaccount.com",
		})
		require.NoError(t, err)
		assert.IsType(t, (*Sidecar)(nil), p)
	})

	t.Run("empty config selects sidecar with default endpoints", func(t *testing.T) {
		t.Parallel()

		p, err := New(Config{})
		require.NoError(t, err)

		sc, ok := p.(*Sidecar)
		require.True(t, ok)
		assert.Equal(t, DefaultTokenEndpoint, sc.tokenEndpoint)
		assert.Equal(t, DefaultCredentialEndpoint, sc.credentialEndpoint)
	})

	t.Run("malformed key is a construction error", func(t *testing.T) {
		t.Parallel()

		_, err := New(Config{
			ProjectID:   "tours-prod",
			ClientEmail: "gateway@tours-prod.iam.gserviceaccount.com",
			PrivateKey:  "garbage",
		})
		require.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestServiceAccount_SignURL(t *testing.T) {
	t.Parallel()

	sa, err := NewServiceAccount(
		"tours-prod",
		"gateway@tours-prod.iam.gserviceaccount.com",
		rsaTestKey(t),
	)
	require.NoError(t, err)

	expires := time.Now().Add(15 * time.Minute)
	signed, err := sa.SignURL(context.Background(), "tours-media", ".private/uploads/abc", "PUT", expires)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Contains(t, u.Path, "tours-media")
	assert.Contains(t, u.Path, ".private/uploads/abc")
	assert.NotEmpty(t, u.Query().Get("X-Goog-Signature"))
	assert.Equal(t, "gateway@tours-prod.iam.gserviceaccount.com", u.Query().Get("X-Goog-Credential")[:len("gateway@tours-prod.iam.gserviceaccount.com")])
}
