// Package vault is the codec that turns the record store's plaintext
// payload into an encrypted container and back, keyed by a passphrase.
// The envelope is Argon2id + AES-256-GCM with a small binary framing.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	KeySize   = 32 // AES-256 key size
	SaltSize  = 32 // Salt size for Argon2id
	NonceSize = 12 // GCM nonce size

	EnvelopeVersion = 1

	// Default Argon2id parameters
	DefaultArgon2Memory      = 64 * 1024 // 64 MB
	DefaultArgon2Iterations  = 3
	DefaultArgon2Parallelism = 4
)

var (
	// ErrDecryptionFailed covers a wrong passphrase and corrupt
	// ciphertext alike; the two are indistinguishable under GCM.
	ErrDecryptionFailed = errors.New("decryption failed: wrong passphrase or corrupt vault")
	// ErrInvalidEnvelope is returned when the ciphertext framing cannot
	// be parsed.
	ErrInvalidEnvelope = errors.New("invalid vault envelope format")
	// ErrInvalidVersion is returned for envelopes written by an
	// unsupported format version.
	ErrInvalidVersion = errors.New("unsupported vault envelope version")
)

// Argon2Params holds the key derivation parameters stored alongside the
// ciphertext so old vaults stay readable after defaults change.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// DefaultArgon2Params returns the default Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      DefaultArgon2Memory,
		Iterations:  DefaultArgon2Iterations,
		Parallelism: DefaultArgon2Parallelism,
	}
}

// Codec encrypts and decrypts vault payloads.
type Codec struct {
	params Argon2Params
}

// NewCodec creates a codec with the given KDF parameters.
func NewCodec(params Argon2Params) *Codec {
	return &Codec{params: params}
}

// NewDefaultCodec creates a codec with default KDF parameters.
func NewDefaultCodec() *Codec {
	return NewCodec(DefaultArgon2Params())
}

// envelope is the parsed form of the on-disk container.
type envelope struct {
	version    uint8
	params     Argon2Params
	salt       []byte
	nonce      []byte
	ciphertext []byte
}

// Encrypt seals the plaintext under a key derived from the passphrase.
// Each call generates a fresh salt and nonce.
func (c *Codec) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := deriveKey(passphrase, salt, c.params)
	defer Zeroize(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	env := &envelope{
		version:    EnvelopeVersion,
		params:     c.params,
		salt:       salt,
		nonce:      nonce,
		ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	}
	return env.marshal(), nil
}

// Decrypt opens ciphertext produced by Encrypt. The KDF parameters come
// from the envelope, not from the codec, so parameter changes never lock
// out existing vaults.
func (c *Codec) Decrypt(data []byte, passphrase string) ([]byte, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}

	key := deriveKey(passphrase, env.salt, env.params)
	defer Zeroize(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, env.nonce, env.ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func deriveKey(passphrase string, salt []byte, params Argon2Params) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		KeySize,
	)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Zeroize clears a byte slice holding key material.
func Zeroize(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// marshal writes the envelope in its binary framing:
// version(1) | memory(4) | iterations(4) | parallelism(1) | salt | nonce | ciphertext.
// Salt and nonce are fixed-size; the ciphertext runs to the end.
func (e *envelope) marshal() []byte {
	buf := make([]byte, 0, 1+9+SaltSize+NonceSize+len(e.ciphertext))
	buf = append(buf, e.version)
	buf = binary.LittleEndian.AppendUint32(buf, e.params.Memory)
	buf = binary.LittleEndian.AppendUint32(buf, e.params.Iterations)
	buf = append(buf, e.params.Parallelism)
	buf = append(buf, e.salt...)
	buf = append(buf, e.nonce...)
	buf = append(buf, e.ciphertext...)
	return buf
}

func parseEnvelope(data []byte) (*envelope, error) {
	const header = 1 + 9 + SaltSize + NonceSize
	if len(data) < header {
		return nil, ErrInvalidEnvelope
	}

	version := data[0]
	if version != EnvelopeVersion {
		return nil, ErrInvalidVersion
	}

	env := &envelope{version: version}
	env.params.Memory = binary.LittleEndian.Uint32(data[1:5])
	env.params.Iterations = binary.LittleEndian.Uint32(data[5:9])
	env.params.Parallelism = data[9]

	offset := 10
	env.salt = data[offset : offset+SaltSize]
	offset += SaltSize
	env.nonce = data[offset : offset+NonceSize]
	offset += NonceSize
	env.ciphertext = data[offset:]
	return env, nil
}
