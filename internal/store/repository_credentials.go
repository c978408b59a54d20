// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/models"
)

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository]. It handles encrypted-blob persistence against the
// "credentials" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, call-level tracing of database interactions. Blob contents are
// opaque ciphertext and are never logged.
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a new credential record and returns the fully populated
// [models.CredentialRecord] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrCredentialAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *credentialRepository) Save(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, saveCredential, record.Name, record.Blob)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Save").
			Str("name", record.Name).
			Msg("error saving credential record")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.CredentialRecord{}, ErrCredentialAlreadyExists
		default:
			return models.CredentialRecord{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&record.ID, &record.Name, &record.Blob, &record.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.CredentialRecord{}, ErrCredentialAlreadyExists
		}
		log.Err(err).
			Str("func", "*credentialRepository.Save").
			Str("name", record.Name).
			Msg("error: scanning error")
		return models.CredentialRecord{}, err
	}

	return record, nil
}

// FindByName retrieves the credential record stored under name.
//
// Error handling:
//   - No matching row → [ErrCredentialNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *credentialRepository) FindByName(ctx context.Context, name string) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	var record models.CredentialRecord
	row := r.db.QueryRowContext(ctx, findCredentialByName, name)

	if err := row.Scan(&record.ID, &record.Name, &record.Blob, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CredentialRecord{}, ErrCredentialNotFound
		}
		log.Err(err).
			Str("func", "*credentialRepository.FindByName").
			Str("name", name).
			Msg("error: scanning error")
		return models.CredentialRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return record, nil
}

// List returns all credential records ordered by name.
func (r *credentialRepository) List(ctx context.Context) ([]models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCredentials)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.List").
			Msg("failed to execute query for listing credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CredentialRecord, 0, 10)

	for rows.Next() {
		var record models.CredentialRecord
		if scanErr := rows.Scan(&record.ID, &record.Name, &record.Blob, &record.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*credentialRepository.List").
				Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*credentialRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// Delete removes the credential record stored under name.
//
// Returns [ErrCredentialNotFound] when the DELETE affected no rows.
func (r *credentialRepository) Delete(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCredential, name)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Delete").
			Str("name", name).
			Msg("failed to execute delete statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
