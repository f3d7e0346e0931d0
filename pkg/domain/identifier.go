package domain

import "github.com/google/uuid"

// Identifier is the value object used for every entity id in the system
// (task ids, user ids, task owners). It wraps a non-empty string; generated
// values are UUIDv4 strings, but parsed values are accepted as given.
type Identifier struct {
	value string
}

// NewIdentifier generates a fresh globally unique Identifier.
func NewIdentifier() Identifier {
	return Identifier{value: uuid.NewString()}
}

// ParseIdentifier wraps an externally supplied id, e.g. one taken from a
// request path. An empty raw value is rejected with ErrEmptyIdentifier.
func ParseIdentifier(raw string) (Identifier, error) {
	if raw == "" {
		return Identifier{}, newValidationError(ReasonEmptyIdentifier)
	}

	return Identifier{value: raw}, nil
}

// String returns the canonical string form.
func (i Identifier) String() string { return i.value }

// Equals reports value equality.
func (i Identifier) Equals(other Identifier) bool { return i.value == other.value }

// IsZero reports whether i is the zero Identifier, i.e. it was never set.
func (i Identifier) IsZero() bool { return i.value == "" }
