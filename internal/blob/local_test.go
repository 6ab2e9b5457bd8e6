package blob

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, written, err := store.Save(strings.NewReader("some content"))
	require.NoError(t, err)
	require.Equal(t, int64(len("some content")), written)
	require.NotEmpty(t, key)

	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "some content", string(content))
}

func TestLocalStoreDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, _, err := store.Save(strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(key))
	_, err = store.Open(key)
	require.Error(t, err)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete(key))
}

func TestLocalStoreKeysAreUnique(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	k1, _, err := store.Save(strings.NewReader("a"))
	require.NoError(t, err)
	k2, _, err := store.Save(strings.NewReader("a"))
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
}
