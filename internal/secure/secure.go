// Package secure holds the vault passphrase in protected memory between
// resolution (environment variable or prompt) and the codec calls that
// consume it. The plaintext only exists inside a scoped callback.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned when a buffer is used after Destroy.
var ErrDestroyed = errors.New("secure buffer has been destroyed")

// Buffer wraps a memguard enclave: the secret is encrypted at rest in
// memory and the backing pages are locked against swapping where the
// platform allows it.
type Buffer struct {
	enclave *memguard.Enclave

	mu        sync.Mutex
	destroyed bool
}

// NewBuffer seals the given bytes into protected memory. The caller
// should zero its own copy afterwards.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// NewBufferFromString seals a string. The original string cannot be
// zeroed in Go; keep its scope as small as possible.
func NewBufferFromString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// With opens the enclave, passes the plaintext to fn, and wipes the
// unsealed copy before returning. The slice must not escape fn.
func (b *Buffer) With(fn func(secret []byte) error) error {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return ErrDestroyed
	}
	enclave := b.enclave
	b.mu.Unlock()

	locked, err := enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(locked.Bytes())
}

// WithString is With for callers that need the secret as a string, such
// as the vault codec's passphrase parameter. The string copy lives until
// garbage collection; keep fn short.
func (b *Buffer) WithString(fn func(secret string) error) error {
	return b.With(func(secret []byte) error {
		return fn(string(secret))
	})
}

// Destroy marks the buffer unusable. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
	b.enclave = nil
}
