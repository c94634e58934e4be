// Package permissions enforces the owner-only file mode required for
// vault files and plaintext inputs holding secrets.
package permissions

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SecureMode is the mode vault and input files are created with and must
// keep: read/write for the owner, nothing for group or other.
const SecureMode fs.FileMode = 0o600

// groupOtherBits are the permission bits that must be clear.
const groupOtherBits fs.FileMode = 0o077

// Check fails when the file grants any access to group or other. A
// nonexistent path passes: a vault that does not exist yet is created
// with SecureMode on first write.
func Check(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if mode := info.Mode().Perm(); mode&groupOtherBits != 0 {
		return fmt.Errorf("insecure permissions on %s: current %04o, required %04o",
			path, mode, SecureMode)
	}
	return nil
}

// WriteFile replaces path atomically with SecureMode permissions. The
// data goes to an exclusive temp file in the same directory first, then
// a rename swaps it in, so an interrupted write leaves the previous file
// intact and the plaintext never exists with open permissions.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp.%d.%d",
		filepath.Base(path), os.Getpid(), time.Now().UnixNano()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, SecureMode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
