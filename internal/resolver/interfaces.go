package resolver

import (
	"context"

	"github.com/entitykit/go-entity-kit/models"
)

// Resolver resolves a persisted entity by a full or truncated UUID
// candidate. Implementations are stateless and safe for concurrent use as
// long as the underlying storage capabilities are.
type Resolver interface {
	// Resolve returns the unique matching entity or a definitive
	// NotFound/Ambiguous outcome. See [Resolution].
	Resolve(ctx context.Context, entityType models.EntityType, candidate string) (Resolution, error)
}

// StorageIntrospector reports, for a given entity type, how its identifier
// attribute is physically encoded. The classification is discovered once per
// resolution call and never cached by the resolver itself.
type StorageIntrospector interface {
	IdentifierEncoding(ctx context.Context, entityType models.EntityType) (models.IdentifierEncoding, error)
}

// EntityQuerier executes identifier lookups against storage. Both methods
// take the candidate in normalized hex form (lowercase, hyphens stripped);
// the implementation owns the comparison details for each encoding,
// including nibble-exact matching of odd-length prefixes.
type EntityQuerier interface {
	// QueryExact matches a complete identifier: hex32 is exactly 32 hex
	// characters. Binary columns are compared against the 16 decoded bytes,
	// text columns case-insensitively against the hyphen-stripped value.
	QueryExact(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hex32 string) ([]models.EntityRef, error)

	// QueryPrefix matches all identifiers whose normalized hex form starts
	// with hexPrefix (1–31 hex characters).
	QueryPrefix(ctx context.Context, entityType models.EntityType, enc models.IdentifierEncoding, hexPrefix string) ([]models.EntityRef, error)
}
