// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package crypto

import (
	"encoding/base64"
	"fmt"
	"io"
)

// GenerateKey produces 32 cryptographically random bytes from random and
// returns them base64-encoded (standard encoding), ready to be placed in an
// environment variable when provisioning a new key.
//
// It is a free function with no dependency on cipher state so operators and
// tests can call it with any randomness source (crypto/rand.Reader in
// production, a seeded reader in tests). Returns an error if the random
// read fails.
func GenerateKey(random io.Reader) (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(random, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	defer zero(key)

	return base64.StdEncoding.EncodeToString(key), nil
}

// DecodeKey decodes base64-encoded key material (as produced by
// [GenerateKey]) and verifies it is exactly 32 bytes.
//
// The returned slice is owned by the caller, who is responsible for wiping
// it once the encrypt/decrypt call it was decoded for has finished.
// Returns [ErrDecoding] for invalid base64 and [ErrInvalidKeyLength] for a
// wrong decoded size.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if len(key) != KeySize {
		zero(key)
		return nil, ErrInvalidKeyLength
	}

	return key, nil
}
