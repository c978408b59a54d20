// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package resolver

import "strings"

// canonicalHexLen is the length of an unhyphenated canonical UUID.
const canonicalHexLen = 32

// maxCandidateLen is the length of a full canonical hyphenated UUID, the
// longest raw input the resolver accepts.
const maxCandidateLen = 36

// candidate is a validated, normalized identifier candidate: lowercase hex
// with hyphens stripped. A candidate is full when it covers the entire
// 32-character key space and partial otherwise; it is never both.
type candidate struct {
	hex string
}

func (c candidate) full() bool {
	return len(c.hex) == canonicalHexLen
}

// parseCandidate normalizes raw into a candidate: hyphens are stripped and
// hex digits lowercased. It returns [ErrInvalidCandidate] when raw is empty,
// exceeds 36 characters, contains a character outside [0-9a-fA-F-], or
// normalizes to zero or more than 32 hex characters.
func parseCandidate(raw string) (candidate, error) {
	if raw == "" || len(raw) > maxCandidateLen {
		return candidate{}, ErrInvalidCandidate
	}

	var b strings.Builder
	b.Grow(canonicalHexLen)

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch == '-':
			// Hyphens are permitted anywhere and stripped.
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f':
			b.WriteByte(ch)
		case ch >= 'A' && ch <= 'F':
			b.WriteByte(ch + ('a' - 'A'))
		default:
			return candidate{}, ErrInvalidCandidate
		}
	}

	normalized := b.String()
	if len(normalized) == 0 || len(normalized) > canonicalHexLen {
		return candidate{}, ErrInvalidCandidate
	}

	return candidate{hex: normalized}, nil
}
