// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/models"
)

// SQLiteCatalog implements the resolver's storage capabilities against
// SQLite. Introspection reads the declared column type from
// pragma_table_info; queries mirror the PostgreSQL catalog with hex() and
// ? placeholders.
type SQLiteCatalog struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteCatalog constructs a [SQLiteCatalog] backed by the provided
// database connection and logger.
func NewSQLiteCatalog(db *DB, logger *logger.Logger) *SQLiteCatalog {
	logger.Debug().Msg("creating sqlite entity catalog")
	return &SQLiteCatalog{
		db:     db,
		logger: logger,
	}
}

// IdentifierEncoding classifies the declared type of the identifier column:
//
//   - BLOB                          → BinaryUUID
//   - TEXT, CLOB, UUID, *CHAR*      → TextUUID
//   - anything else                 → Unsupported
//
// Returns [ErrUnknownEntityType] when the table/column pair does not exist.
func (c *SQLiteCatalog) IdentifierEncoding(ctx context.Context, entityType models.EntityType) (models.IdentifierEncoding, error) {
	log := logger.FromContext(ctx)

	if err := validateEntityType(entityType); err != nil {
		return models.EncodingUnsupported, err
	}

	row := c.db.QueryRowContext(ctx, sqliteIdentifierEncoding, entityType.Table, entityType.IDColumn)

	var declaredType string
	if err := row.Scan(&declaredType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncodingUnsupported, fmt.Errorf("%w: %s.%s", ErrUnknownEntityType, entityType.Table, entityType.IDColumn)
		}
		log.Err(err).
			Str("func", "*SQLiteCatalog.IdentifierEncoding").
			Str("table", entityType.Table).
			Msg("error reading column metadata")
		return models.EncodingUnsupported, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	declared := strings.ToUpper(declaredType)
	switch {
	case declared == "BLOB":
		return models.EncodingBinaryUUID, nil
	case declared == "TEXT", declared == "CLOB", declared == "UUID",
		strings.Contains(declared, "CHAR"):
		return models.EncodingTextUUID, nil
	default:
		return models.EncodingUnsupported, nil
	}
}

// QueryExact matches a complete identifier. hex32 is the normalized
// 32-hex-character candidate.
func (c *SQLiteCatalog) QueryExact(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hex32 string) ([]models.EntityRef, error) {
	return c.query(ctx, entityType, enc, hex32, true)
}

// QueryPrefix matches all identifiers whose normalized hex form starts with
// hexPrefix, exact to the nibble.
func (c *SQLiteCatalog) QueryPrefix(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hexPrefix string) ([]models.EntityRef, error) {
	return c.query(ctx, entityType, enc, hexPrefix, false)
}

func (c *SQLiteCatalog) query(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hexCandidate string, exact bool) ([]models.EntityRef, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSQLiteIdentifierQuery(entityType, enc, hexCandidate, exact)
	if err != nil {
		log.Err(err).
			Str("func", "*SQLiteCatalog.query").
			Str("table", entityType.Table).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*SQLiteCatalog.query").
			Str("table", entityType.Table).
			Bool("exact", exact).
			Msg("failed to execute identifier query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanEntityRefs(rows, entityType)
}
