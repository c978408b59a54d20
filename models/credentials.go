package models

import "time"

// Credentials is a flat string-to-string payload (username, secret, token,
// arbitrary extra pairs). Insertion order is irrelevant; nesting and
// non-string values are not part of the encryption boundary.
type Credentials map[string]string

// CredentialRecord is a named, encrypted credential payload as persisted by
// the credential repository. Blob is the opaque encoded output of the
// credential cipher; the database never sees plaintext.
type CredentialRecord struct {
	// ID is the internal unique identifier of the record.
	// It is used only at the persistence layer.
	ID int64 `json:"-"`

	// Name is the unique, caller-chosen label of the credential.
	Name string `json:"name"`

	// Blob is the base64-encoded nonce-prefixed ciphertext.
	Blob string `json:"blob"`

	// CreatedAt is the timestamp when the record was first stored.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the CredentialRecord model.
func (c CredentialRecord) TableName() string {
	return "credentials"
}
