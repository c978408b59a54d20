package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an unsupported database driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidEncryptionKey indicates that the configured encryption key
	// is not a base64-encoded 256-bit key.
	ErrInvalidEncryptionKey = errors.New("invalid encryption key")
)
