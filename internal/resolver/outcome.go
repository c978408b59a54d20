// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package resolver

import "github.com/entitykit/go-entity-kit/models"

// Outcome enumerates the three possible results of a resolution. It is a
// closed set: a resolution is exactly one of these, and no entity is ever
// silently chosen among ties.
type Outcome int

const (
	// OutcomeNotFound means no stored identifier matched the candidate.
	OutcomeNotFound Outcome = iota

	// OutcomeFound means exactly one entity matched.
	OutcomeFound

	// OutcomeAmbiguous means two or more entities matched a partial
	// candidate. The caller decides how to surface this, typically by
	// asking for more characters.
	OutcomeAmbiguous
)

// String returns a human-readable label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Resolution is the result of one resolve call.
type Resolution struct {
	// Outcome tells which of the three defined results occurred.
	Outcome Outcome

	// Ref is the matched entity reference; set only when Outcome is
	// OutcomeFound.
	Ref models.EntityRef

	// Matches is the number of entities that matched: 1 when found,
	// ≥ 2 when ambiguous, 0 otherwise.
	Matches int
}
