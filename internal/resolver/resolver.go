// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

// Package resolver resolves persisted entities by full or truncated UUID
// candidates. It consumes two storage capabilities — encoding introspection
// and identifier queries — and branches explicitly on the closed
// [models.IdentifierEncoding] variant, never on duck-typed comparisons.
package resolver

import (
	"context"
	"fmt"

	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/models"
)

// entityResolver is the default implementation of [Resolver]. It holds no
// state across calls; every resolution re-discovers the identifier encoding
// and issues exactly one data query.
type entityResolver struct {
	introspector StorageIntrospector
	querier      EntityQuerier
	logger       *logger.Logger
}

// NewResolver constructs a [Resolver] backed by the provided storage
// capabilities and logger.
func NewResolver(introspector StorageIntrospector, querier EntityQuerier, logger *logger.Logger) Resolver {
	logger.Debug().Msg("creating entity resolver")
	return &entityResolver{
		introspector: introspector,
		querier:      querier,
		logger:       logger,
	}
}

// Resolve implements [Resolver].
//
// The candidate is normalized (hyphens stripped, hex lowercased) and
// validated, the identifier encoding of entityType is discovered, and
// exactly one query runs: an exact match when the candidate covers the full
// 32-hex-character key space, a prefix match otherwise. Full form always
// takes precedence; a candidate is never matched both ways.
//
// Error handling:
//   - malformed candidate → [ErrInvalidCandidate];
//   - unrecognized identifier encoding → [ErrUnsupportedStorageEncoding];
//   - a full UUID matching more than one row → [ErrStorageIntegrityViolation];
//   - storage failures are wrapped and returned as-is.
//
// NotFound and Ambiguous are not errors: they are returned as [Resolution]
// outcomes the caller must branch on.
func (r *entityResolver) Resolve(ctx context.Context, entityType models.EntityType, rawCandidate string) (Resolution, error) {
	log := logger.FromContext(ctx)

	cand, err := parseCandidate(rawCandidate)
	if err != nil {
		// The raw candidate is caller input and may be sensitive; log its
		// length, not its content.
		log.Debug().
			Str("func", "*entityResolver.Resolve").
			Str("table", entityType.Table).
			Int("candidate_len", len(rawCandidate)).
			Msg("rejected malformed candidate")
		return Resolution{}, err
	}

	enc, err := r.introspector.IdentifierEncoding(ctx, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "*entityResolver.Resolve").
			Str("table", entityType.Table).
			Msg("error discovering identifier encoding")
		return Resolution{}, fmt.Errorf("discover identifier encoding: %w", err)
	}

	switch enc {
	case models.EncodingBinaryUUID, models.EncodingTextUUID:
	default:
		log.Error().
			Str("func", "*entityResolver.Resolve").
			Str("table", entityType.Table).
			Str("encoding", string(enc)).
			Msg("identifier attribute uses an unsupported storage encoding")
		return Resolution{}, ErrUnsupportedStorageEncoding
	}

	var refs []models.EntityRef
	if cand.full() {
		refs, err = r.querier.QueryExact(ctx, entityType, enc, cand.hex)
		if err != nil {
			return Resolution{}, fmt.Errorf("exact identifier query: %w", err)
		}
		// A full UUID can never be structurally ambiguous; more than one
		// physical row means a duplicate key already exists in storage.
		if len(refs) > 1 {
			log.Error().
				Str("func", "*entityResolver.Resolve").
				Str("table", entityType.Table).
				Int("matches", len(refs)).
				Msg("full uuid matched multiple rows")
			return Resolution{}, fmt.Errorf("%w: %d rows", ErrStorageIntegrityViolation, len(refs))
		}
	} else {
		refs, err = r.querier.QueryPrefix(ctx, entityType, enc, cand.hex)
		if err != nil {
			return Resolution{}, fmt.Errorf("prefix identifier query: %w", err)
		}
	}

	switch len(refs) {
	case 0:
		return Resolution{Outcome: OutcomeNotFound}, nil
	case 1:
		return Resolution{Outcome: OutcomeFound, Ref: refs[0], Matches: 1}, nil
	default:
		// Determinism requires the caller to supply more characters; the
		// resolver never guesses among ties.
		return Resolution{Outcome: OutcomeAmbiguous, Matches: len(refs)}, nil
	}
}
