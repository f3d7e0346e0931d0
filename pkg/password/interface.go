// Package password hashes and verifies user passwords. Two algorithms are
// available: bcrypt and argon2id. Both produce self-describing strings, so a
// hash carries everything needed to verify it later.
//
//go:generate mockgen -package mockpassword -source=interface.go -destination=mock/mockpassword.go *
package password

import "context"

// Hasher turns plaintext passwords into storable hashes and checks plaintext
// against them.
type Hasher interface {
	// Hash returns a salted hash of plaintext.
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare reports whether plaintext matches hashed. A mismatch is
	// (false, nil); an error means hashed could not be interpreted.
	Compare(ctx context.Context, plaintext, hashed string) (bool, error)
}
