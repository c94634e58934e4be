package cli

import (
	"github.com/vrwmiller/myvault/internal/record"
	"github.com/vrwmiller/myvault/internal/secure"
)

// loadStore decrypts and parses the vault file using the sealed
// passphrase. Every command rebuilds the store from disk: nothing is
// cached across invocations.
func loadStore(passphrase *secure.Buffer) (*record.Store, error) {
	codec := newCodec()
	var store *record.Store
	err := passphrase.WithString(func(secret string) error {
		var err error
		store, err = codec.LoadFile(vaultPath, secret)
		return err
	})
	return store, err
}

// saveStore serializes, re-encrypts, and writes the store. Called exactly
// once per mutating command, after all in-memory changes succeeded.
func saveStore(passphrase *secure.Buffer, store *record.Store) error {
	codec := newCodec()
	return passphrase.WithString(func(secret string) error {
		return codec.SaveFile(vaultPath, secret, store)
	})
}
