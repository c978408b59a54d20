// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package service

import (
	"context"

	"github.com/entitykit/go-entity-kit/models"
)

// CredentialService combines credential encryption with persistence: payloads
// are sealed before they reach storage and opened after retrieval, so the
// repository only ever sees opaque blobs.
type CredentialService interface {
	// Store encrypts payload with key and persists it under name.
	Store(ctx context.Context, name string, payload models.Credentials, key []byte) (models.CredentialRecord, error)

	// Reveal fetches the record stored under name and decrypts it with key.
	Reveal(ctx context.Context, name string, key []byte) (models.Credentials, error)

	// List returns all stored credential records. Blobs stay encrypted.
	List(ctx context.Context) ([]models.CredentialRecord, error)

	// Delete removes the credential stored under name.
	Delete(ctx context.Context, name string) error
}
