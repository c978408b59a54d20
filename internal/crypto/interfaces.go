package crypto

import "github.com/entitykit/go-entity-kit/models"

// CredentialCipher performs authenticated encryption of flat credential
// payloads for at-rest storage. It holds no state between calls: the key is
// supplied fresh on every call and both methods are safe for concurrent use.
//
// The blob format is nonce ‖ ciphertext‖tag, base64-encoded (standard
// encoding). The format carries no version or algorithm tag; if the cipher
// suite ever changes, old blobs fail authentication with no further
// diagnosis. This is a known limitation of the wire format.
type CredentialCipher interface {
	// Encrypt serializes payload and encrypts it under key (32 bytes).
	// Returns the opaque encoded blob, suitable for a single text column.
	Encrypt(payload models.Credentials, key []byte) (string, error)

	// Decrypt reverses Encrypt. Any tamper or key mismatch fails with
	// ErrAuthenticationFailed; no partial payload is ever returned.
	Decrypt(blob string, key []byte) (models.Credentials, error)
}
