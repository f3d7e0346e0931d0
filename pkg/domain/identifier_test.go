package domain_test

import (
	"taskmanager/pkg/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifier(t *testing.T) {
	a := domain.NewIdentifier()
	b := domain.NewIdentifier()

	require.False(t, a.IsZero())
	require.False(t, a.Equals(b), "generated identifiers must be unique")

	parsed, err := uuid.Parse(a.String())
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "uuid", raw: "8c2f5d0e-3b4a-4f6e-9d1c-2a7b8e9f0a1b"},
		{name: "arbitrary non-empty string", raw: "task-1"},
		{name: "empty", raw: "", wantErr: domain.ErrEmptyIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := domain.ParseIdentifier(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, domain.ErrValidation)
				require.EqualError(t, err, "identifier cannot be empty")
				require.True(t, id.IsZero())

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.raw, id.String())
		})
	}
}

func TestIdentifierEquals(t *testing.T) {
	a, err := domain.ParseIdentifier("abc")
	require.NoError(t, err)
	b, err := domain.ParseIdentifier("abc")
	require.NoError(t, err)
	c, err := domain.ParseIdentifier("abd")
	require.NoError(t, err)

	require.True(t, a.Equals(b))
	require.True(t, b.Equals(a))
	require.False(t, a.Equals(c))
	require.Equal(t, a, b, "identifiers are comparable values")
}
