// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package config

import (
	"fmt"

	"github.com/entitykit/go-entity-kit/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Both checks are lenient about absence: an empty driver falls back to the
// PostgreSQL default, and an empty encryption key is only rejected later, by
// the commands that actually need one.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.App.EncryptionKey != "" {
		if _, err := crypto.DecodeKey(cfg.App.EncryptionKey); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEncryptionKey, err)
		}
	}

	return nil
}
