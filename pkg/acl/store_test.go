package acl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/objectgw/pkg/objpath"
)

// fakeMetadata is a MetadataStore over an in-memory map.
type fakeMetadata struct {
	objects map[string]map[string]string
	err     error
}

func (f *fakeMetadata) Metadata(_ context.Context, path objpath.ObjectPath) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.objects[path.String()], nil
}

func (f *fakeMetadata) SetMetadata(_ context.Context, path objpath.ObjectPath, md map[string]string) error {
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string]map[string]string{}
	}
	f.objects[path.String()] = md
	return nil
}

func TestStore_roundTrip(t *testing.T) {
	t.Parallel()

	backend := &fakeMetadata{}
	store := NewStore(backend)
	path := objpath.ObjectPath{Bucket: "tours-media", Key: ".private/uploads/abc"}

	policy := Policy{
		Owner:      "user-1",
		Visibility: VisibilityPublic,
		GroupRules: []GroupRule{
			{Group: "guides", Permission: PermissionWrite},
			{Group: "reviewers", Permission: PermissionRead},
		},
	}

	require.NoError(t, store.Set(context.Background(), path, policy))

	got, err := store.Get(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, policy, *got)
}

func TestStore_Get_absent(t *testing.T) {
	t.Parallel()

	backend := &fakeMetadata{objects: map[string]map[string]string{
		// Object exists with unrelated metadata but no policy keys.
		"tours-media/.private/uploads/abc": {"uploaded-by": "importer"},
	}}
	store := NewStore(backend)

	got, err := store.Get(context.Background(), objpath.ObjectPath{Bucket: "tours-media", Key: ".private/uploads/abc"})
	require.NoError(t, err)
	assert.Nil(t, got, "no policy keys means absent, not an error")
}

func TestStore_Get_backendError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("object not found")
	store := NewStore(&fakeMetadata{err: sentinel})

	_, err := store.Get(context.Background(), objpath.ObjectPath{Bucket: "b", Key: "k"})
	require.ErrorIs(t, err, sentinel)
}

func TestDecodePolicy_partialMetadata(t *testing.T) {
	t.Parallel()

	t.Run("owner only defaults to private", func(t *testing.T) {
		t.Parallel()

		p, ok := decodePolicy(map[string]string{metaOwner: "user-1"})
		require.True(t, ok)
		assert.Equal(t, "user-1", p.Owner)
		assert.Equal(t, VisibilityPrivate, p.Visibility)
	})

	t.Run("junk visibility defaults to private", func(t *testing.T) {
		t.Parallel()

		p, ok := decodePolicy(map[string]string{metaOwner: "user-1", metaVisibility: "world-readable"})
		require.True(t, ok)
		assert.Equal(t, VisibilityPrivate, p.Visibility)
	})

	t.Run("malformed group rules are skipped", func(t *testing.T) {
		t.Parallel()

		p, ok := decodePolicy(map[string]string{
			metaOwner:  "user-1",
			metaGroups: "guides=read,,=write,admins=root,reviewers=write",
		})
		require.True(t, ok)
		assert.Equal(t, []GroupRule{
			{Group: "guides", Permission: PermissionRead},
			{Group: "reviewers", Permission: PermissionWrite},
		}, p.GroupRules)
	})

	t.Run("no keys at all is absent", func(t *testing.T) {
		t.Parallel()

		_, ok := decodePolicy(map[string]string{"something": "else"})
		assert.False(t, ok)
	})
}
