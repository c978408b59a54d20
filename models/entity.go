package models

import "github.com/google/uuid"

// IdentifierEncoding classifies how an entity type physically stores its
// identifier attribute. The classification is a closed set: every comparison
// in the resolver and the storage capabilities branches explicitly on it.
type IdentifierEncoding string

const (
	// EncodingBinaryUUID marks identifier columns holding the raw 16-byte
	// encoding of a 128-bit UUID (e.g. PostgreSQL bytea, SQLite BLOB).
	EncodingBinaryUUID IdentifierEncoding = "binary-uuid"

	// EncodingTextUUID marks identifier columns holding the 36-character
	// canonical hyphenated string form, matched case-insensitively.
	EncodingTextUUID IdentifierEncoding = "text-uuid"

	// EncodingUnsupported is reported for any column type outside the two
	// recognized encodings. The resolver refuses to query such types.
	EncodingUnsupported IdentifierEncoding = "unsupported"
)

// EntityType is an opaque handle identifying one storage-backed record type
// and the single attribute holding its identifier. It carries no behavior;
// storage capabilities use it to locate rows and metadata.
type EntityType struct {
	// Table is the name of the table backing the entity type.
	Table string

	// IDColumn is the name of the designated identifier attribute.
	IDColumn string
}

// EntityRef is a reference to one persisted entity: its type plus the
// canonical form of its identifier.
type EntityRef struct {
	Type EntityType
	ID   uuid.UUID
}
