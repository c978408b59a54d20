// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package config

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "zero config is valid",
			cfg:  StructuredConfig{},
		},
		{
			name: "postgres driver",
			cfg:  StructuredConfig{Storage: Storage{DB: DB{Driver: DriverPostgres}}},
		},
		{
			name: "sqlite driver",
			cfg:  StructuredConfig{Storage: Storage{DB: DB{Driver: DriverSQLite}}},
		},
		{
			name:    "unsupported driver",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{Driver: "oracle"}}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "valid encryption key",
			cfg:  StructuredConfig{App: App{EncryptionKey: validTestKey(t)}},
		},
		{
			name:    "key is not base64",
			cfg:     StructuredConfig{App: App{EncryptionKey: "not base64!!"}},
			wantErr: ErrInvalidEncryptionKey,
		},
		{
			name:    "key too short",
			cfg:     StructuredConfig{App: App{EncryptionKey: base64.StdEncoding.EncodeToString(make([]byte, 16))}},
			wantErr: ErrInvalidEncryptionKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
