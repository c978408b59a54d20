// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entitykit/go-entity-kit/models"
)

var (
	binaryProjects = models.EntityType{Table: "projects", IDColumn: "id"}
	fullHex        = "550e8400e29b41d4a716446655440000"
)

func Test_validateEntityType(t *testing.T) {
	tests := []struct {
		name       string
		entityType models.EntityType
		wantErr    bool
	}{
		{name: "plain identifiers", entityType: models.EntityType{Table: "projects", IDColumn: "id"}},
		{name: "underscored", entityType: models.EntityType{Table: "my_table_2", IDColumn: "_col"}},
		{name: "empty table", entityType: models.EntityType{Table: "", IDColumn: "id"}, wantErr: true},
		{name: "empty column", entityType: models.EntityType{Table: "projects", IDColumn: ""}, wantErr: true},
		{name: "quote injection", entityType: models.EntityType{Table: `projects"; DROP TABLE x; --`, IDColumn: "id"}, wantErr: true},
		{name: "leading digit", entityType: models.EntityType{Table: "1projects", IDColumn: "id"}, wantErr: true},
		{name: "dotted name", entityType: models.EntityType{Table: "public.projects", IDColumn: "id"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntityType(tt.entityType)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidEntityType))
				return
			}
			require.NoError(t, err)
		})
	}
}

func Test_buildPostgresIdentifierQuery_BinaryExact(t *testing.T) {
	query, args, err := buildPostgresIdentifierQuery(binaryProjects, models.EncodingBinaryUUID, fullHex, true)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "encode(id, 'hex')")
	require.Contains(t, q, "from projects")
	require.Contains(t, q, "where")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// single argument: the 16 decoded identifier bytes
	require.Len(t, args, 1)
	raw, ok := args[0].([]byte)
	require.True(t, ok, "binary exact argument should be raw bytes")
	want, _ := hex.DecodeString(fullHex)
	assert.Equal(t, want, raw)
}

func Test_buildPostgresIdentifierQuery_BinaryPrefix(t *testing.T) {
	query, args, err := buildPostgresIdentifierQuery(binaryProjects, models.EncodingBinaryUUID, "550e840", false)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "encode(id, 'hex') like $1 || '%'")

	require.Len(t, args, 1)
	assert.Equal(t, "550e840", args[0])
}

func Test_buildPostgresIdentifierQuery_TextExact(t *testing.T) {
	query, args, err := buildPostgresIdentifierQuery(binaryProjects, models.EncodingTextUUID, fullHex, true)
	require.NoError(t, err)

	q := strings.ToLower(query)
	// the stored value is hyphen-normalized and lowercased before comparison
	require.Contains(t, q, "replace(lower(id::text), '-', '') = $1")

	require.Len(t, args, 1)
	assert.Equal(t, fullHex, args[0])
}

func Test_buildPostgresIdentifierQuery_TextPrefix(t *testing.T) {
	query, args, err := buildPostgresIdentifierQuery(binaryProjects, models.EncodingTextUUID, "550e", false)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "replace(lower(id::text), '-', '') like $1 || '%'")

	require.Len(t, args, 1)
	assert.Equal(t, "550e", args[0])
}

func Test_buildPostgresIdentifierQuery_Rejections(t *testing.T) {
	// invalid table name
	_, _, err := buildPostgresIdentifierQuery(models.EntityType{Table: "no good", IDColumn: "id"}, models.EncodingTextUUID, "550e", false)
	assert.ErrorIs(t, err, ErrInvalidEntityType)

	// unsupported encoding never reaches SQL
	_, _, err = buildPostgresIdentifierQuery(binaryProjects, models.EncodingUnsupported, "550e", false)
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)

	// non-hex exact candidate cannot be decoded to bytes
	_, _, err = buildPostgresIdentifierQuery(binaryProjects, models.EncodingBinaryUUID, strings.Repeat("zz", 16), true)
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func Test_buildSQLiteIdentifierQuery_BinaryExact(t *testing.T) {
	query, args, err := buildSQLiteIdentifierQuery(binaryProjects, models.EncodingBinaryUUID, fullHex, true)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "lower(hex(id))")
	require.Contains(t, q, "from projects")

	// placeholder format should be ? (SQLite)
	require.Contains(t, query, "?")
	require.NotContains(t, query, "$1")

	require.Len(t, args, 1)
	raw, ok := args[0].([]byte)
	require.True(t, ok)
	want, _ := hex.DecodeString(fullHex)
	assert.Equal(t, want, raw)
}

func Test_buildSQLiteIdentifierQuery_Prefixes(t *testing.T) {
	query, args, err := buildSQLiteIdentifierQuery(binaryProjects, models.EncodingBinaryUUID, "550e840", false)
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(query), "lower(hex(id)) like ? || '%'")
	require.Len(t, args, 1)
	assert.Equal(t, "550e840", args[0])

	query, args, err = buildSQLiteIdentifierQuery(binaryProjects, models.EncodingTextUUID, "550e", false)
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(query), "replace(lower(id), '-', '') like ? || '%'")
	require.Len(t, args, 1)
	assert.Equal(t, "550e", args[0])
}
