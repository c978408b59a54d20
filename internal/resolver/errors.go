// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package resolver

import "errors"

// Sentinel errors returned by the resolver. Callers should use [errors.Is]
// to match against these values. NotFound and Ambiguous are not errors but
// [Resolution] outcomes the caller must branch on.
var (
	// ErrInvalidCandidate is returned for malformed identifier input: empty,
	// longer than 36 characters, containing a character outside [0-9a-fA-F-],
	// or normalizing to more than 32 hex characters. Caller error, never
	// retried automatically.
	ErrInvalidCandidate = errors.New("candidate is not a valid uuid or uuid prefix")

	// ErrUnsupportedStorageEncoding is returned when the entity type's
	// identifier attribute uses an encoding the resolver does not recognize.
	// This is a configuration/schema error and is surfaced immediately.
	ErrUnsupportedStorageEncoding = errors.New("identifier attribute uses an unsupported storage encoding")

	// ErrStorageIntegrityViolation is returned when an exact match on a full
	// UUID physically returns more than one row. The key space makes this
	// structurally impossible, so it indicates a pre-existing duplicate key.
	// It is fatal to the call and never masked by picking a first match.
	ErrStorageIntegrityViolation = errors.New("full uuid matched multiple rows: duplicate identifier in storage")
)
