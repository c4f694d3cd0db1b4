package netgraph

import "errors"

// Ingestion and lookup error taxonomy. Ingest validates an entire batch
// before any mutation; when one of these is returned the graph is unchanged.
var (
	// ErrUnknownEntityType is returned when a batch entity carries a type
	// tag the vocabulary does not recognize.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrUnknownRelationshipType is returned when a batch relationship
	// carries a type tag the vocabulary does not recognize.
	ErrUnknownRelationshipType = errors.New("unknown relationship type")

	// ErrDanglingReference is returned when a relationship endpoint resolves
	// to neither an existing node nor an entity in the same batch.
	ErrDanglingReference = errors.New("relationship references unknown entity")

	// ErrNotFound is returned by entity lookups for ids not in the graph.
	ErrNotFound = errors.New("entity not found")
)

// IsValidationError reports whether err stems from batch validation. Such
// errors are per-document and permanent: the batch was rejected whole and
// retrying it cannot succeed.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownEntityType) ||
		errors.Is(err, ErrUnknownRelationshipType) ||
		errors.Is(err, ErrDanglingReference)
}
