// Package accounts implements user registration and sign-in.
package accounts

import (
	"context"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/password"
	"taskmanager/pkg/storage"
	"taskmanager/pkg/token"

	"go.uber.org/zap"
)

type service struct {
	storage storage.UserStorage
	hasher  password.Hasher
	issuer  token.Issuer
}

// New creates an account Service. hasher is used both to hash new passwords
// and to verify them on sign-in; issuer mints the access tokens.
func New(storage storage.UserStorage, hasher password.Hasher, issuer token.Issuer) Service {
	return &service{
		storage: storage,
		hasher:  hasher,
		issuer:  issuer,
	}
}

// SignUp registers a new user. The email is checked for an existing account
// before the password is hashed. The check is advisory: storage may still
// reject a concurrent duplicate.
func (s service) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewUserEmailExistsError(email)
	}

	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.StoreUser(ctx, domain.NewUser(domain.NewUserParams{
		Username: req.Username,
		Email:    email,
		Password: hashed,
	}))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user signed up", zap.Stringer("user_id", user.ID()))

	return user, nil
}

// SignIn checks the credentials and returns an access token. Unknown emails
// and wrong passwords fail with the same error.
func (s service) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.Info(ctx, "sign in failed", zap.String("reason", "unknown email"))

		return nil, domain.NewInvalidCredentialError()
	}

	ok, err := s.hasher.Compare(ctx, req.Password, user.Password())
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info(ctx, "sign in failed", zap.String("reason", "wrong password"), zap.Stringer("user_id", user.ID()))

		return nil, domain.NewInvalidCredentialError()
	}

	accessToken, err := s.issuer.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "user signed in", zap.Stringer("user_id", user.ID()))

	return &SignInResult{AccessToken: accessToken}, nil
}
