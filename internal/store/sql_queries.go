// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"encoding/hex"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"

	"github.com/entitykit/go-entity-kit/models"
)

const (
	// postgresIdentifierEncoding reports the underlying type of one column.
	// udt_name sees through domains and character-length modifiers.
	postgresIdentifierEncoding = `SELECT udt_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2;`

	// sqliteIdentifierEncoding reports the declared type of one column.
	sqliteIdentifierEncoding = `SELECT type
		FROM pragma_table_info(?)
		WHERE name = ?;`

	saveCredential = `INSERT INTO credentials (name, blob, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, blob, created_at;`

	findCredentialByName = `SELECT id, name, blob, created_at
		FROM credentials
		WHERE name = $1;`

	listCredentials = `SELECT id, name, blob, created_at
		FROM credentials
		ORDER BY name;`

	deleteCredential = `DELETE FROM credentials
		WHERE name = $1;`
)

// sqlIdentifierPattern accepts plain SQL identifiers only. Table and column
// names arrive from callers and are interpolated into query text, so
// anything else is rejected before a query is built.
var sqlIdentifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateEntityType rejects entity types whose table or identifier column
// name is not a plain SQL identifier.
func validateEntityType(entityType models.EntityType) error {
	if !sqlIdentifierPattern.MatchString(entityType.Table) || !sqlIdentifierPattern.MatchString(entityType.IDColumn) {
		return fmt.Errorf("%w: %q.%q", ErrInvalidEntityType, entityType.Table, entityType.IDColumn)
	}
	return nil
}

// buildPostgresIdentifierQuery constructs the single SELECT an identifier
// lookup issues against PostgreSQL. Every variant projects the identifier to
// its unhyphenated lowercase hex form so the scan path is uniform:
//
//   - binary exact:  id_col = <16 bytes>
//   - binary prefix: encode(id_col, 'hex') LIKE <prefix> || '%'
//   - text exact:    replace(lower(id_col::text), '-', '') = <hex32>
//   - text prefix:   replace(lower(id_col::text), '-', '') LIKE <prefix> || '%'
//
// Comparing against the hex expansion makes odd-length (nibble) prefixes
// exact without any post-filtering. hexCandidate must already be normalized
// (lowercase, no hyphens).
func buildPostgresIdentifierQuery(entityType models.EntityType, enc models.IdentifierEncoding, hexCandidate string, exact bool) (string, []any, error) {
	if err := validateEntityType(entityType); err != nil {
		return "", nil, err
	}

	col := entityType.IDColumn

	var selectExpr string
	var where sq.Sqlizer

	switch enc {
	case models.EncodingBinaryUUID:
		selectExpr = fmt.Sprintf("encode(%s, 'hex')", col)
		if exact {
			raw, err := hex.DecodeString(hexCandidate)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			where = sq.Eq{col: raw}
		} else {
			where = sq.Expr(selectExpr+" LIKE ? || '%'", hexCandidate)
		}
	case models.EncodingTextUUID:
		selectExpr = fmt.Sprintf("replace(lower(%s::text), '-', '')", col)
		if exact {
			where = sq.Expr(selectExpr+" = ?", hexCandidate)
		} else {
			where = sq.Expr(selectExpr+" LIKE ? || '%'", hexCandidate)
		}
	default:
		return "", nil, fmt.Errorf("%w: encoding %q", ErrBuildingSQLQuery, enc)
	}

	query, args, err := sq.Select(selectExpr).
		From(entityType.Table).
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSQLiteIdentifierQuery is the SQLite counterpart of
// [buildPostgresIdentifierQuery]: hex() instead of encode(), ? placeholders
// instead of $n, and no ::text cast (SQLite column values are already
// comparable as text).
func buildSQLiteIdentifierQuery(entityType models.EntityType, enc models.IdentifierEncoding, hexCandidate string, exact bool) (string, []any, error) {
	if err := validateEntityType(entityType); err != nil {
		return "", nil, err
	}

	col := entityType.IDColumn

	var selectExpr string
	var where sq.Sqlizer

	switch enc {
	case models.EncodingBinaryUUID:
		selectExpr = fmt.Sprintf("lower(hex(%s))", col)
		if exact {
			raw, err := hex.DecodeString(hexCandidate)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			where = sq.Eq{col: raw}
		} else {
			where = sq.Expr(selectExpr+" LIKE ? || '%'", hexCandidate)
		}
	case models.EncodingTextUUID:
		selectExpr = fmt.Sprintf("replace(lower(%s), '-', '')", col)
		if exact {
			where = sq.Expr(selectExpr+" = ?", hexCandidate)
		} else {
			where = sq.Expr(selectExpr+" LIKE ? || '%'", hexCandidate)
		}
	default:
		return "", nil, fmt.Errorf("%w: encoding %q", ErrBuildingSQLQuery, enc)
	}

	query, args, err := sq.Select(selectExpr).
		From(entityType.Table).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
