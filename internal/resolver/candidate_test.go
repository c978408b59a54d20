// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantHex  string
		wantFull bool
		wantErr  bool
	}{
		{
			name:     "full canonical uuid",
			raw:      "550e8400-e29b-41d4-a716-446655440000",
			wantHex:  "550e8400e29b41d4a716446655440000",
			wantFull: true,
		},
		{
			name:     "full uuid uppercased",
			raw:      "550E8400-E29B-41D4-A716-446655440000",
			wantHex:  "550e8400e29b41d4a716446655440000",
			wantFull: true,
		},
		{
			name:     "unhyphenated 32 hex chars",
			raw:      "550e8400e29b41d4a716446655440000",
			wantHex:  "550e8400e29b41d4a716446655440000",
			wantFull: true,
		},
		{
			name:    "short prefix",
			raw:     "550e8400",
			wantHex: "550e8400",
		},
		{
			name:    "single hex character",
			raw:     "f",
			wantHex: "f",
		},
		{
			name:    "odd-length prefix",
			raw:     "550e840",
			wantHex: "550e840",
		},
		{
			name:    "prefix with interior hyphens",
			raw:     "550e8400-e29b",
			wantHex: "550e8400e29b",
		},
		{
			name:    "mixed case prefix",
			raw:     "AbCdEf",
			wantHex: "abcdef",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			raw:     "zz",
			wantErr: true,
		},
		{
			name:    "embedded whitespace",
			raw:     "550e 8400",
			wantErr: true,
		},
		{
			name:    "raw longer than 36 characters",
			raw:     strings.Repeat("a", 37),
			wantErr: true,
		},
		{
			name:    "33 hex chars after stripping",
			raw:     strings.Repeat("a", 33),
			wantErr: true,
		},
		{
			name:    "hyphens only",
			raw:     "----",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := parseCandidate(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCandidate),
					"expected ErrInvalidCandidate, got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, cand.hex)
			assert.Equal(t, tt.wantFull, cand.full())
		})
	}
}

// A candidate normalizing to exactly 32 hex characters is always treated as
// full, even when the raw form carries non-canonical hyphen placement. Full
// form takes precedence; the same candidate is never also matched as a prefix.
func TestParseCandidate_FullPrecedence(t *testing.T) {
	cand, err := parseCandidate("550e8400e29b-41d4a716-446655440000")
	require.NoError(t, err)
	assert.True(t, cand.full())
}
