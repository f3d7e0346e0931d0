package password

import "fmt"

// Supported algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Options selects and tunes the hashing algorithm.
type Options struct {
	// Algorithm is either AlgorithmBcrypt or AlgorithmArgon2id.
	Algorithm string
	// BcryptCost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	BcryptCost int
	// Argon2 tunes argon2id. The zero value means DefaultArgon2Params.
	Argon2 Argon2Params
}

// New builds the Hasher described by options.
func New(options Options) (Hasher, error) {
	switch options.Algorithm {
	case AlgorithmBcrypt:
		return NewBcrypt(options.BcryptCost), nil
	case AlgorithmArgon2id:
		params := options.Argon2
		if params == (Argon2Params{}) {
			params = DefaultArgon2Params()
		}

		return NewArgon2(params), nil
	default:
		return nil, fmt.Errorf("unsupported password algorithm %q", options.Algorithm)
	}
}
