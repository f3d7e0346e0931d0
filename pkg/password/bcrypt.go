package password

import (
	"context"
	"errors"
	"fmt"
	"taskmanager/pkg/serrors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBcryptPasswordBytes is the longest password bcrypt accepts.
const MaxBcryptPasswordBytes = 72

// Bcrypt implements Hasher with bcrypt. Passwords longer than
// MaxBcryptPasswordBytes are rejected with a BAD_REQUEST error.
type Bcrypt struct {
	cost int
}

var _ Hasher = (*Bcrypt)(nil)

// NewBcrypt returns a bcrypt hasher. Costs outside bcrypt's accepted range
// fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", serrors.Wrap(serrors.ErrBadRequest, err,
			"password must not exceed %d bytes", MaxBcryptPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(hash), nil
}

func (b *Bcrypt) Compare(ctx context.Context, plaintext, hashed string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		// nothing longer than the limit was ever hashed
		return false, nil
	default:
		return false, fmt.Errorf("could not compare password: %w", err)
	}
}
