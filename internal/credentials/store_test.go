package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoad(t *testing.T) {
	t.Run("loads existing token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("ACCESS_TOKEN=abc123\n"), 0o600))

		store, err := NewStore(path)
		require.NoError(t, err)
		assert.Equal(t, "abc123", store.Token())
	})

	t.Run("missing file yields empty token", func(t *testing.T) {
		store, err := NewStore(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.Empty(t, store.Token())
	})

	t.Run("missing key yields empty token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TENANT_ID=t1\n"), 0o600))

		store, err := NewStore(path)
		require.NoError(t, err)
		assert.Empty(t, store.Token())
	})
}

func TestStoreUpdate(t *testing.T) {
	t.Run("rewrites token line in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		original := "CLIENT_ID=id\nACCESS_TOKEN=old\nTENANT_ID=t1\n"
		require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

		store, err := NewStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Update("new-token"))

		assert.Equal(t, "new-token", store.Token())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "CLIENT_ID=id\nACCESS_TOKEN=new-token\nTENANT_ID=t1\n", string(data))
	})

	t.Run("appends token line when absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TENANT_ID=t1\n"), 0o600))

		store, err := NewStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Update("fresh"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "TENANT_ID=t1\nACCESS_TOKEN=fresh\n", string(data))
	})

	t.Run("creates file when missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		store, err := NewStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Update("fresh"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ACCESS_TOKEN=fresh\n", string(data))
	})

	t.Run("persistence failure keeps old token", func(t *testing.T) {
		// Parent directory does not exist, so the write must fail.
		path := filepath.Join(t.TempDir(), "absent-dir", ".env")
		store := &Store{path: path, token: "old"}

		err := store.Update("new")
		require.Error(t, err)
		assert.Equal(t, "old", store.Token())
	})
}
