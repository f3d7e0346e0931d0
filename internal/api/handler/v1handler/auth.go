package v1handler

import (
	"net/http"
	"taskmanager/internal/accounts"
	"taskmanager/pkg/domain"
	"time"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Username string `json:"username" validate:"required,max=64"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// User is the public representation of a domain.User. It never carries the
// password hash.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SignInResponse is returned by a successful sign-in.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

func DomainUserToV1(in *domain.User) User {
	return User{
		ID:        in.ID().String(),
		Username:  in.Username(),
		Email:     in.Email().String(),
		CreatedAt: in.CreatedAt(),
		UpdatedAt: in.UpdatedAt(),
	}
}

// SignUp handles POST /v1/auth/signup.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body signUpRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Accounts.SignUp(r.Context(), accounts.SignUpRequest{
		Email:    body.Email,
		Password: body.Password,
		Username: body.Username,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, DomainUserToV1(user))
}

// SignIn handles POST /v1/auth/signin.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body signInRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)

		return
	}

	res, err := h.deps.Accounts.SignIn(r.Context(), accounts.SignInRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, SignInResponse{AccessToken: res.AccessToken})
}
