package objpath_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/objectgw/pkg/objpath"
)

func TestCodec_Parse(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{})

	tests := []struct {
		name    string
		raw     string
		want    objpath.ObjectPath
		wantErr bool
	}{
		{
			name: "plain path",
			raw:  "/tours-media/covers/1.jpg",
			want: objpath.ObjectPath{Bucket: "tours-media", Key: "covers/1.jpg"},
		},
		{
			name: "no leading slash",
			raw:  "tours-media/covers/1.jpg",
			want: objpath.ObjectPath{Bucket: "tours-media", Key: "covers/1.jpg"},
		},
		{
			name: "bucket URL",
			raw:  "https://storage.googleapis.com/tours-media/covers/1.jpg",
			want: objpath.ObjectPath{Bucket: "tours-media", Key: "covers/1.jpg"},
		},
		{
			name: "query string stripped",
			raw:  "/tours-media/covers/1.jpg?X-Goog-Signature=abc",
			want: objpath.ObjectPath{Bucket: "tours-media", Key: "covers/1.jpg"},
		},
		{
			name: "deep key",
			raw:  "/b/.private/uploads/abc/def",
			want: objpath.ObjectPath{Bucket: "b", Key: ".private/uploads/abc/def"},
		},
		{
			name:    "single segment",
			raw:     "/tours-media",
			wantErr: true,
		},
		{
			name:    "bucket only with trailing slash",
			raw:     "/tours-media/",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "root",
			raw:     "/",
			wantErr: true,
		},
		{
			name:    "host only URL",
			raw:     "https://storage.googleapis.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := codec.Parse(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, objpath.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodec_Parse_markerRemap(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{DefaultBucket: "tours-media"})

	t.Run("private marker rewritten into default bucket", func(t *testing.T) {
		t.Parallel()

		got, err := codec.Parse("/.private/uploads/abc123")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: "tours-media", Key: ".private/uploads/abc123"}, got)
	})

	t.Run("public marker rewritten into default bucket", func(t *testing.T) {
		t.Parallel()

		got, err := codec.Parse("/public/img/tours/tour-1-cover.jpg")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: "tours-media", Key: "public/img/tours/tour-1-cover.jpg"}, got)
	})

	t.Run("unknown bucket literal kept as bucket", func(t *testing.T) {
		t.Parallel()

		got, err := codec.Parse("/secret/uploads/abc123")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: "secret", Key: "uploads/abc123"}, got)
	})

	t.Run("no remap without default bucket", func(t *testing.T) {
		t.Parallel()

		plain := objpath.New(objpath.Config{})
		got, err := plain.Parse("/.private/uploads/abc123")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: ".private", Key: "uploads/abc123"}, got)
	})
}

func TestCodec_Normalize(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{
		DefaultBucket: "tours-media",
		PrivateDir:    "/tours-media/.private",
	})

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "private dir becomes canonical",
			raw:  "/tours-media/.private/uploads/abc123",
			want: "/objects/uploads/abc123",
		},
		{
			name: "bucket URL becomes canonical",
			raw:  "https://storage.googleapis.com/tours-media/.private/uploads/abc123",
			want: "/objects/uploads/abc123",
		},
		{
			name: "signed URL query stripped",
			raw:  "https://storage.googleapis.com/tours-media/.private/uploads/abc123?X-Goog-Expires=900",
			want: "/objects/uploads/abc123",
		},
		{
			name: "already canonical passes through",
			raw:  "/objects/uploads/abc123",
			want: "/objects/uploads/abc123",
		},
		{
			name: "unrelated path passes through",
			raw:  "/img/icons/pin.svg",
			want: "/img/icons/pin.svg",
		},
		{
			name: "public object keeps bucket-stripped path",
			raw:  "https://storage.googleapis.com/tours-media/public/img/cover.jpg",
			want: "/public/img/cover.jpg",
		},
		{
			name: "bucket-relative private path becomes canonical",
			raw:  "/.private/uploads/abc123",
			want: "/objects/uploads/abc123",
		},
		{
			name: "repeated bucket prefix still becomes canonical",
			raw:  "/tours-media/tours-media/.private/uploads/abc123",
			want: "/objects/uploads/abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, codec.Normalize(tt.raw))
		})
	}
}

func TestCodec_Normalize_scenarioFromPrivateDirConfig(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{PrivateDir: "/mybucket/.private"})
	assert.Equal(t, "/objects/uploads/abc123", codec.Normalize("/mybucket/.private/uploads/abc123"))
}

func TestCodec_customPrivateDirLeaf(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{
		DefaultBucket: "media",
		PrivateDir:    "/media/vault",
	})

	t.Run("leaf marker remapped into default bucket", func(t *testing.T) {
		t.Parallel()

		got, err := codec.Parse("/vault/uploads/abc123")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: "media", Key: "vault/uploads/abc123"}, got)
	})

	t.Run("normalize matches the configured leaf", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "/objects/uploads/abc123", codec.Normalize("/media/vault/uploads/abc123"))
		assert.Equal(t, "/objects/uploads/abc123", codec.Normalize("/vault/uploads/abc123"))
	})

	t.Run("default leaf no longer remapped", func(t *testing.T) {
		t.Parallel()

		got, err := codec.Parse("/.private/uploads/abc123")
		require.NoError(t, err)
		assert.Equal(t, objpath.ObjectPath{Bucket: ".private", Key: "uploads/abc123"}, got)
	})
}

func TestCodec_Normalize_idempotent(t *testing.T) {
	t.Parallel()

	codec := objpath.New(objpath.Config{
		DefaultBucket: "tours-media",
		PrivateDir:    "/tours-media/.private",
	})

	inputs := []string{
		"/tours-media/.private/uploads/abc123",
		"https://storage.googleapis.com/tours-media/.private/uploads/abc123?sig=x",
		"/objects/uploads/abc123",
		"/img/icons/pin.svg",
		"",
		"/",
		"relative/path.png",
		"https://cdn.example.com/anything/else.jpg",
	}
	for i := range 50 {
		inputs = append(inputs, fmt.Sprintf("/bucket-%d/dir-%d/file-%d.bin", i, i*7, i*13))
	}

	for _, raw := range inputs {
		once := codec.Normalize(raw)
		assert.Equal(t, once, codec.Normalize(once), "input %q", raw)
	}
}

func TestEntityID(t *testing.T) {
	t.Parallel()

	id, ok := objpath.EntityID("/objects/uploads/abc123")
	require.True(t, ok)
	assert.Equal(t, "uploads/abc123", id)

	_, ok = objpath.EntityID("/objects/")
	assert.False(t, ok)

	_, ok = objpath.EntityID("/img/pin.svg")
	assert.False(t, ok)

	assert.True(t, objpath.IsCanonical("/objects/x"))
	assert.False(t, objpath.IsCanonical("/object/x"))
}
