package store

import "github.com/google/uuid"

// IDGenerator produces unique identifiers for new records.
// The store takes this as a dependency instead of calling uuid directly so
// tests can supply a deterministic generator.
type IDGenerator interface {
	// NextID returns a new identifier. Implementations must not return the
	// same value twice within one process.
	NextID() string
}

// UUIDGenerator is the production IDGenerator, backed by random v4 UUIDs.
type UUIDGenerator struct{}

// NextID returns a random UUID string.
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}
