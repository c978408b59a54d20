// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/models"
)

// PostgresCatalog implements the resolver's storage capabilities
// (introspection and identifier queries) against PostgreSQL.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, call-level tracing of database interactions.
type PostgresCatalog struct {
	db     *DB
	logger *logger.Logger
}

// NewPostgresCatalog constructs a [PostgresCatalog] backed by the provided
// database connection and logger.
func NewPostgresCatalog(db *DB, logger *logger.Logger) *PostgresCatalog {
	logger.Debug().Msg("creating postgres entity catalog")
	return &PostgresCatalog{
		db:     db,
		logger: logger,
	}
}

// IdentifierEncoding classifies the physical storage of the entity type's
// identifier column from information_schema metadata:
//
//   - bytea                      → BinaryUUID
//   - uuid, bpchar, varchar, text → TextUUID (comparisons run over the
//     canonical text projection of the column)
//   - anything else              → Unsupported
//
// Returns [ErrUnknownEntityType] when the table/column pair does not exist.
// The classification is not cached; every resolution re-reads the metadata.
func (c *PostgresCatalog) IdentifierEncoding(ctx context.Context, entityType models.EntityType) (models.IdentifierEncoding, error) {
	log := logger.FromContext(ctx)

	if err := validateEntityType(entityType); err != nil {
		return models.EncodingUnsupported, err
	}

	row := c.db.QueryRowContext(ctx, postgresIdentifierEncoding, entityType.Table, entityType.IDColumn)

	var udtName string
	if err := row.Scan(&udtName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncodingUnsupported, fmt.Errorf("%w: %s.%s", ErrUnknownEntityType, entityType.Table, entityType.IDColumn)
		}
		log.Err(err).
			Str("func", "*PostgresCatalog.IdentifierEncoding").
			Str("table", entityType.Table).
			Msg("error reading column metadata")
		return models.EncodingUnsupported, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	switch udtName {
	case "bytea":
		return models.EncodingBinaryUUID, nil
	case "uuid", "bpchar", "varchar", "text":
		return models.EncodingTextUUID, nil
	default:
		return models.EncodingUnsupported, nil
	}
}

// QueryExact matches a complete identifier. hex32 is the normalized
// 32-hex-character candidate.
func (c *PostgresCatalog) QueryExact(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hex32 string) ([]models.EntityRef, error) {
	return c.query(ctx, entityType, enc, hex32, true)
}

// QueryPrefix matches all identifiers whose normalized hex form starts with
// hexPrefix. Odd-length prefixes are matched to the nibble: the comparison
// runs against the hex expansion of the stored value.
func (c *PostgresCatalog) QueryPrefix(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hexPrefix string) ([]models.EntityRef, error) {
	return c.query(ctx, entityType, enc, hexPrefix, false)
}

func (c *PostgresCatalog) query(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hexCandidate string, exact bool) ([]models.EntityRef, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPostgresIdentifierQuery(entityType, enc, hexCandidate, exact)
	if err != nil {
		log.Err(err).
			Str("func", "*PostgresCatalog.query").
			Str("table", entityType.Table).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn:
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownEntityType, entityType.Table, entityType.IDColumn)
		}
		log.Err(err).
			Str("func", "*PostgresCatalog.query").
			Str("table", entityType.Table).
			Bool("exact", exact).
			Msg("failed to execute identifier query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanEntityRefs(rows, entityType)
}

// scanEntityRefs collects identifier rows into entity references. Every
// query variant projects the identifier to unhyphenated lowercase hex, so a
// single scan path serves both encodings and both dialects.
func scanEntityRefs(rows *sql.Rows, entityType models.EntityType) ([]models.EntityRef, error) {
	refs := make([]models.EntityRef, 0, 2)

	for rows.Next() {
		var hex32 string
		if err := rows.Scan(&hex32); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		id, err := uuid.Parse(hex32)
		if err != nil {
			return nil, fmt.Errorf("%w: stored identifier %q is not a uuid: %w", ErrScanningRow, hex32, err)
		}

		refs = append(refs, models.EntityRef{Type: entityType, ID: id})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}
