package accounts

import (
	"context"
	"taskmanager/pkg/domain"
)

// SignUpRequest holds the input of Service.SignUp. Password is plaintext.
type SignUpRequest struct {
	Email    string
	Password string
	Username string
}

// SignInRequest holds the input of Service.SignIn. Password is plaintext.
type SignInRequest struct {
	Email    string
	Password string
}

// SignInResult is returned by a successful sign-in.
type SignInResult struct {
	AccessToken string
}

// Service exposes the account use cases.
//
//go:generate mockgen -package mockaccounts -source=interface.go -destination=mock/mockaccounts.go *
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error)
	SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error)
}
