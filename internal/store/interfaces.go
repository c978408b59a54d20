package store

import (
	"context"

	"github.com/entitykit/go-entity-kit/models"
)

// CredentialRepository persists named encrypted credential blobs. The
// repository never sees plaintext: callers encrypt with the credential
// cipher before saving and decrypt after loading.
type CredentialRepository interface {
	// Save inserts a new record and returns it with server-assigned fields
	// (ID, CreatedAt) populated. A duplicate name fails with
	// ErrCredentialAlreadyExists.
	Save(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error)

	// FindByName returns the record stored under name, or
	// ErrCredentialNotFound.
	FindByName(ctx context.Context, name string) (models.CredentialRecord, error)

	// List returns all records ordered by name.
	List(ctx context.Context) ([]models.CredentialRecord, error)

	// Delete removes the record stored under name, or returns
	// ErrCredentialNotFound when nothing was deleted.
	Delete(ctx context.Context, name string) error
}
