package token

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/serrors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is used when Options.TTL is not set.
const DefaultTTL = 24 * time.Hour

// ErrNoPrivateKey is returned when issuing with an RS256 configured for
// verification only.
var ErrNoPrivateKey = errors.New("no private key configured")

// Options configures RS256.
type Options struct {
	// PrivateKey is the PEM encoded RSA key used for signing. Optional when
	// the instance only verifies.
	PrivateKey string
	// PublicKey is the PEM encoded RSA key used for verification. When empty
	// it is derived from PrivateKey.
	PublicKey string
	// Issuer is written to and required in the iss claim when set.
	Issuer string
	// TTL is the lifetime of issued tokens.
	TTL time.Duration
}

// RS256 signs and verifies JWTs with RSA keys.
type RS256 struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	issuer  string
	ttl     time.Duration
	parser  *jwt.Parser
}

var (
	_ Issuer   = (*RS256)(nil)
	_ Verifier = (*RS256)(nil)
)

func NewRS256(options Options) (*RS256, error) {
	r := &RS256{
		issuer: options.Issuer,
		ttl:    options.TTL,
	}
	if r.ttl <= 0 {
		r.ttl = DefaultTTL
	}

	if options.PrivateKey != "" {
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(options.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("could not parse RSA private key: %w", err)
		}
		r.private = key
		r.public = &key.PublicKey
	}
	if options.PublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("could not parse RSA public key: %w", err)
		}
		r.public = key
	}
	if r.public == nil {
		return nil, errors.New("either a private or a public key is required")
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if r.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(r.issuer))
	}
	r.parser = jwt.NewParser(parserOptions...)

	return r, nil
}

// Issue signs a token for subject that expires after the configured TTL.
func (r *RS256) Issue(_ context.Context, subject domain.Identifier, ttl time.Duration) (string, error) {
	if r.private == nil {
		return "", ErrNoPrivateKey
	}
	if ttl <= 0 {
		ttl = r.ttl
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    r.issuer,
		Subject:   subject.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(r.private)
	if err != nil {
		return "", fmt.Errorf("could not sign JWT: %w", err)
	}

	return signed, nil
}

func (r *RS256) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	return r.Issue(ctx, user.ID(), r.ttl)
}

func (r *RS256) Verify(_ context.Context, token string) (domain.Identifier, error) {
	var claims jwt.RegisteredClaims
	if _, err := r.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return r.public, nil
	}); err != nil {
		return domain.Identifier{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	id, err := domain.ParseIdentifier(claims.Subject)
	if err != nil {
		return domain.Identifier{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return id, nil
}
