// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package crypto

import "errors"

// Sentinel errors returned by the credential cipher. Callers should use
// [errors.Is] to match against these values. All of them are terminal for
// the call; the cipher never retries internally.
var (
	// ErrInvalidKeyLength is returned when the supplied key material is not
	// exactly 32 bytes. The check runs before any cryptographic operation.
	ErrInvalidKeyLength = errors.New("key must be exactly 32 bytes")

	// ErrDecoding is returned when a blob is not valid base64 text.
	ErrDecoding = errors.New("blob is not valid base64")

	// ErrMalformedBlob is returned when a decoded blob is shorter than the
	// minimum nonce-plus-tag overhead and therefore cannot contain a message.
	ErrMalformedBlob = errors.New("blob is too short to contain a message")

	// ErrAuthenticationFailed is returned when the authentication tag does
	// not verify. A wrong key, a corrupted blob, and a tampered blob are
	// deliberately indistinguishable to avoid acting as a decryption oracle.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
