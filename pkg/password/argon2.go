package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned by Argon2.Compare when the stored hash is not
// a PHC-formatted argon2id string this package can read.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Argon2Params configures argon2id.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns OWASP-recommended defaults for argon2id.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 implements Hasher with argon2id. Hashes are encoded as
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>.
type Argon2 struct {
	params Argon2Params
}

var _ Hasher = (*Argon2)(nil)

func NewArgon2(params Argon2Params) *Argon2 {
	return &Argon2{params: params}
}

func (a *Argon2) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	salt := make([]byte, a.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("could not generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, a.params.Iterations, a.params.Memory, a.params.Parallelism,
		a.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.Memory,
		a.params.Iterations,
		a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Compare verifies plaintext using the parameters recorded in hashed, so
// hashes made with older parameters keep working after a tuning change.
func (a *Argon2) Compare(ctx context.Context, plaintext, hashed string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	params, salt, key, err := decodeArgon2(hashed)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, params.Iterations, params.Memory, params.Parallelism,
		params.KeyLength)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return params, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if len(key) == 0 {
		return params, nil, nil, ErrMalformedHash
	}
	params.SaltLength = uint32(len(salt)) //nolint: gosec
	params.KeyLength = uint32(len(key))   //nolint: gosec

	return params, salt, key, nil
}
