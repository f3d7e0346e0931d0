package v1handler

import (
	"context"
	"net/http"
	"strings"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/serrors"
	"taskmanager/pkg/token"

	"go.uber.org/zap"
)

type ctxKey string

// UserIDKey is the context key under which the authenticated user's
// domain.Identifier is stored.
const UserIDKey ctxKey = "UserID"

const bearerPrefix = "Bearer "

// UserIDFromContext returns the authenticated user id stored by RequireBearer.
func UserIDFromContext(ctx context.Context) (domain.Identifier, bool) {
	id, ok := ctx.Value(UserIDKey).(domain.Identifier)

	return id, ok && !id.IsZero()
}

// SecHandler authenticates requests carrying a bearer access token.
type SecHandler struct {
	verifier token.Verifier
}

func NewSecHandler(verifier token.Verifier) *SecHandler {
	return &SecHandler{verifier: verifier}
}

// HandleBearerAuth verifies t and returns ctx extended with the user id it
// was issued for.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, t string) (context.Context, error) {
	if t == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "missing access token")
	}

	userID, err := s.verifier.Verify(ctx, t)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = logger.WithFields(ctx, zap.String("userID", userID.String()))

	return ctx, nil
}

// RequireBearer is a middleware rejecting requests without a valid
// "Authorization: Bearer <token>" header.
func (s *SecHandler) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			res := unauthorized("missing bearer token")
			writeJSON(r.Context(), w, res.StatusCode, res.Response)

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			logger.Debug(r.Context(), "bearer auth failed", zap.Error(err))
			res := unauthorized("invalid access token")
			writeJSON(r.Context(), w, res.StatusCode, res.Response)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(msg string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Response: ErrorBody{
			Code:    serrors.ErrUnauthorized.Error(),
			Message: msg,
		},
	}
}
