// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

// Package crypto implements the credential cipher: authenticated encryption
// of flat string key/value payloads with XChaCha20-Poly1305, producing a
// single base64 blob of the form nonce ‖ ciphertext‖tag.
//
// Secret hygiene: intermediate plaintext buffers and the package's own key
// copies are overwritten before release. Go's runtime gives no guarantee
// about copies it makes internally, so this is a best-effort measure to
// shorten the window a secret resides in memory, not a security boundary
// against a compromised host.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/entitykit/go-entity-kit/models"
)

// KeySize is the required key length in bytes (256 bits).
const KeySize = chacha20poly1305.KeySize

// minBlobSize is the smallest decoded blob that can hold a message:
// a 24-byte nonce followed by at least a bare 16-byte Poly1305 tag.
const minBlobSize = chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// credentialCipher is the private implementation of [CredentialCipher].
// It is stateless; the zero value is usable but NewCredentialCipher should
// be preferred for symmetry with the rest of the codebase.
type credentialCipher struct{}

// NewCredentialCipher constructs a [CredentialCipher].
func NewCredentialCipher() CredentialCipher {
	return &credentialCipher{}
}

// Encrypt implements [CredentialCipher]. It marshals payload to JSON,
// generates a random 24-byte nonce, seals the plaintext with
// XChaCha20-Poly1305 under key, and returns base64(nonce ‖ ciphertext‖tag).
//
// Returns [ErrInvalidKeyLength] if key is not exactly 32 bytes; the check
// runs before any cryptographic operation. Two calls with the same payload
// and key never produce the same blob because the nonce is drawn fresh from
// the OS CSPRNG on every call.
func (c *credentialCipher) Encrypt(payload models.Credentials, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", ErrInvalidKeyLength
	}

	// 1. Serialize to JSON. A flat string map round-trips exactly.
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	defer zero(plaintext)

	// 2. Build the AEAD from a private copy of the key.
	aead, err := newAEAD(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	// 3. Generate a random extended nonce.
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// 4. Seal into the nonce slice so the blob is nonce || ciphertext.
	blob := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CredentialCipher]. It base64-decodes blob, splits the
// leading 24-byte nonce, opens the remainder with XChaCha20-Poly1305 under
// key, and unmarshals the recovered JSON back into a [models.Credentials].
//
// Error handling:
//   - key not 32 bytes → [ErrInvalidKeyLength];
//   - blob not valid base64 → [ErrDecoding];
//   - decoded blob shorter than nonce+tag → [ErrMalformedBlob];
//   - tag verification failure → [ErrAuthenticationFailed], regardless of
//     whether the cause was a wrong key or a corrupted/tampered blob.
//
// On any failure no partial payload is returned.
func (c *credentialCipher) Decrypt(blob string, key []byte) (models.Credentials, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	// 1. Decode base64 blob. Structural checks run before any crypto.
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if len(raw) < minBlobSize {
		return nil, ErrMalformedBlob
	}

	// 2. Build the AEAD from a private copy of the key.
	aead, err := newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	// 3. Split nonce and ciphertext.
	nonce, ciphertext := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]

	// 4. Decrypt and verify the tag. The underlying failure is not
	// propagated: wrong key and tampered data must be indistinguishable.
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	defer zero(plaintext)

	// 5. Unmarshal JSON into the payload map.
	var payload models.Credentials
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	return payload, nil
}

// newAEAD constructs an XChaCha20-Poly1305 AEAD from a private copy of key,
// wiping the copy once the cipher state has absorbed it. The caller retains
// ownership of the original key slice.
func newAEAD(key []byte) (cipher.AEAD, error) {
	k := make([]byte, len(key))
	copy(k, key)
	defer zero(k)
	return chacha20poly1305.NewX(k)
}

// zero overwrites b in place. Buffers holding plaintext or key material are
// wiped before going out of scope.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
