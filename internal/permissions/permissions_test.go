package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNonexistentPathPasses(t *testing.T) {
	assert.NoError(t, Check(filepath.Join(t.TempDir(), "no-such-file")))
}

func TestCheckSecureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	assert.NoError(t, Check(path))

	require.NoError(t, os.Chmod(path, 0o400))
	assert.NoError(t, Check(path))
}

func TestWriteFileCreatesSecure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault.enc")
	require.NoError(t, WriteFile(path, []byte("ciphertext")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, SecureMode, info.Mode().Perm())
}

func TestWriteFileReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.enc")
	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// The temp file must be gone after the rename: only the target
	// remains in the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vault.enc", entries[0].Name())
}

func TestCheckRejectsGroupOtherAccess(t *testing.T) {
	for _, mode := range []os.FileMode{0o644, 0o640, 0o604, 0o666, 0o601} {
		path := filepath.Join(t.TempDir(), "leaky.json")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
		require.NoError(t, os.Chmod(path, mode))

		err := Check(path)
		require.Error(t, err, "mode %04o", mode)
		assert.Contains(t, err.Error(), "insecure permissions")
	}
}
