// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-entity-kit Authors

package store

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/entitykit/go-entity-kit/models"
)

// MemoryCatalog is a pure in-memory implementation of the resolver's storage
// capabilities. It is the reference semantics for identifier matching —
// prefix comparison is spelled out byte by byte, including the trailing
// nibble of odd-length prefixes — and doubles as the fixture for resolver
// tests and offline use.
//
// Safe for concurrent use.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	idColumn string
	encoding models.IdentifierEncoding
	ids      []uuid.UUID
}

// NewMemoryCatalog constructs an empty [MemoryCatalog].
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		entries: make(map[string]*memoryEntry),
	}
}

// Register records an entity type with its identifier encoding and stored
// identifiers. Registering the same table again replaces the previous entry.
func (c *MemoryCatalog) Register(entityType models.EntityType, enc models.IdentifierEncoding, ids ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entityType.Table] = &memoryEntry{
		idColumn: entityType.IDColumn,
		encoding: enc,
		ids:      append([]uuid.UUID(nil), ids...),
	}
}

// Add appends identifiers to an already registered entity type.
func (c *MemoryCatalog) Add(entityType models.EntityType, ids ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[entityType.Table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType.Table)
	}
	entry.ids = append(entry.ids, ids...)
	return nil
}

// IdentifierEncoding reports the registered encoding, or
// [ErrUnknownEntityType] for unregistered tables or a wrong column name.
func (c *MemoryCatalog) IdentifierEncoding(_ context.Context, entityType models.EntityType) (models.IdentifierEncoding, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[entityType.Table]
	if !ok || entry.idColumn != entityType.IDColumn {
		return models.EncodingUnsupported, fmt.Errorf("%w: %s.%s", ErrUnknownEntityType, entityType.Table, entityType.IDColumn)
	}
	return entry.encoding, nil
}

// QueryExact matches a complete identifier against the registered set.
func (c *MemoryCatalog) QueryExact(_ context.Context, entityType models.EntityType, _ models.IdentifierEncoding, hex32 string) ([]models.EntityRef, error) {
	raw, err := hex.DecodeString(hex32)
	if err != nil || len(raw) != 16 {
		return nil, fmt.Errorf("%w: candidate %q is not 16 bytes of hex", ErrExecutingQuery, hex32)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[entityType.Table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType.Table)
	}

	var refs []models.EntityRef
	for _, id := range entry.ids {
		if bytes.Equal(id[:], raw) {
			refs = append(refs, models.EntityRef{Type: entityType, ID: id})
		}
	}
	return refs, nil
}

// QueryPrefix matches all identifiers whose leading bytes equal the hex
// prefix. The longest even run of hex digits is decoded and compared
// byte-wise; an odd trailing digit is compared against the high nibble of
// the next stored byte.
func (c *MemoryCatalog) QueryPrefix(_ context.Context, entityType models.EntityType, _ models.IdentifierEncoding, hexPrefix string) ([]models.EntityRef, error) {
	evenLen := len(hexPrefix) &^ 1
	prefix, err := hex.DecodeString(hexPrefix[:evenLen])
	if err != nil {
		return nil, fmt.Errorf("%w: candidate %q is not hex", ErrExecutingQuery, hexPrefix)
	}

	var nibble byte
	hasNibble := len(hexPrefix) > evenLen
	if hasNibble {
		decoded, err := hex.DecodeString(hexPrefix[evenLen:] + "0")
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %q is not hex", ErrExecutingQuery, hexPrefix)
		}
		nibble = decoded[0] >> 4
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[entityType.Table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType.Table)
	}

	var refs []models.EntityRef
	for _, id := range entry.ids {
		if !bytes.HasPrefix(id[:], prefix) {
			continue
		}
		if hasNibble && (len(prefix) >= len(id) || id[len(prefix)]>>4 != nibble) {
			continue
		}
		refs = append(refs, models.EntityRef{Type: entityType, ID: id})
	}
	return refs, nil
}
