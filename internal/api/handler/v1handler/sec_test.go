package v1handler_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"taskmanager/internal/api/handler/v1handler"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/serrors"
	"taskmanager/pkg/token"
	mocktoken "taskmanager/pkg/token/mock"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// helper to generate an RSA key pair and return the private key and PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func newSecHandlerForTest(t *testing.T, pubPEM string) *v1handler.SecHandler {
	t.Helper()
	verifier, err := token.NewRS256(token.Options{PublicKey: pubPEM})
	require.NoError(t, err, "NewRS256 failed")

	return v1handler.NewSecHandler(verifier)
}

func signJWTRS256(tb testing.TB, priv *rsa.PrivateKey, sub string, issuedAt time.Time, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

func TestHandleBearerAuth_ValidToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	uid := uuid.NewString()
	now := time.Now()
	tkn := signJWTRS256(t, priv, uid, now, now.Add(1*time.Hour))

	ctx, err := sh.HandleBearerAuth(context.Background(), tkn)
	require.NoError(t, err)

	got, ok := v1handler.UserIDFromContext(ctx)
	require.True(t, ok, "expected userID in context")
	require.Equal(t, uid, got.String())
}

func TestHandleBearerAuth_InvalidSignature(t *testing.T) {
	// handler uses pub from key A, but token signed with key B
	_, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	privOther, _ := genRSAKeys(t)
	now := time.Now()
	tkn := signJWTRS256(t, privOther, uuid.NewString(), now, now.Add(time.Hour))

	_, err := sh.HandleBearerAuth(context.Background(), tkn)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestHandleBearerAuth_ExpiredToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	now := time.Now()
	tkn := signJWTRS256(t, priv, uuid.NewString(), now.Add(-2*time.Hour), now.Add(-1*time.Hour))

	_, err := sh.HandleBearerAuth(context.Background(), tkn)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestHandleBearerAuth_WrongAlgorithm(t *testing.T) {
	_, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err, "failed to sign HS256 token")

	_, err = sh.HandleBearerAuth(context.Background(), signed)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestHandleBearerAuth_EmptyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocktoken.NewMockVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

	_, err := v1handler.NewSecHandler(verifier).HandleBearerAuth(context.Background(), "")
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestRequireBearer(t *testing.T) {
	uid := domain.NewIdentifier()

	tests := []struct {
		name       string
		header     string
		setup      func(v *mocktoken.MockVerifier)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			setup:      func(v *mocktoken.MockVerifier) { v.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0) },
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"code":"UNAUTHORIZED","message":"missing bearer token"}`,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			setup:      func(v *mocktoken.MockVerifier) { v.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0) },
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"code":"UNAUTHORIZED","message":"missing bearer token"}`,
		},
		{
			name:   "rejected token",
			header: "Bearer bad",
			setup: func(v *mocktoken.MockVerifier) {
				v.EXPECT().Verify(gomock.Any(), "bad").
					Return(domain.Identifier{}, serrors.KindOnly(serrors.ErrUnauthorized))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"code":"UNAUTHORIZED","message":"invalid access token"}`,
		},
		{
			name:   "accepted token",
			header: "Bearer good",
			setup: func(v *mocktoken.MockVerifier) {
				v.EXPECT().Verify(gomock.Any(), "good").Return(uid, nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			verifier := mocktoken.NewMockVerifier(ctrl)
			tt.setup(verifier)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := v1handler.UserIDFromContext(r.Context())
				require.True(t, ok)
				require.True(t, got.Equals(uid))
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			v1handler.NewSecHandler(verifier).RequireBearer(next).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}
