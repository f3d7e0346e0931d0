// Package token issues and verifies the bearer access tokens handed out on
// sign-in. Tokens are RS256-signed JWTs whose subject is the user id.
//
//go:generate mockgen -package mocktoken -source=interface.go -destination=mock/mocktoken.go *
package token

import (
	"context"
	"taskmanager/pkg/domain"
)

// Issuer mints access tokens for authenticated users.
type Issuer interface {
	// GenerateAccessToken returns a signed token identifying user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, error)
}

// Verifier checks access tokens presented by clients.
type Verifier interface {
	// Verify validates a token and returns the user id it was issued for.
	// Every failure is a serrors.ErrUnauthorized error.
	Verify(ctx context.Context, token string) (domain.Identifier, error)
}
