package vault

import (
	"fmt"
	"os"

	"github.com/vrwmiller/myvault/internal/permissions"
	"github.com/vrwmiller/myvault/internal/record"
)

// LoadFile reads, decrypts, and parses a vault file into a record store.
// A missing or empty file yields an empty store so the first create can
// bootstrap the vault. The file must not be group- or other-accessible.
func (c *Codec) LoadFile(path, passphrase string) (*record.Store, error) {
	if err := permissions.Check(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return record.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file %s: %w", path, err)
	}
	if len(data) == 0 {
		return record.NewStore(), nil
	}

	plaintext, err := c.Decrypt(data, passphrase)
	if err != nil {
		return nil, err
	}
	defer Zeroize(plaintext)

	store, err := record.Parse(plaintext)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// SaveFile serializes, encrypts, and writes the store. The write happens
// exactly once per command, after all in-memory mutations succeeded, and
// replaces the file atomically: a failure at any point, including
// mid-write, leaves the existing vault file untouched.
func (c *Codec) SaveFile(path, passphrase string, store *record.Store) error {
	plaintext, err := store.Serialize()
	if err != nil {
		return err
	}
	defer Zeroize(plaintext)

	ciphertext, err := c.Encrypt(plaintext, passphrase)
	if err != nil {
		return err
	}

	if err := permissions.WriteFile(path, ciphertext); err != nil {
		return fmt.Errorf("failed to write vault file %s: %w", path, err)
	}
	return permissions.Check(path)
}
