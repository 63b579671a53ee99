package identity

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, nil)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "subject-1",
		"email": "dev@example.com",
		"name":  "Dev One",
	})

	claims, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.SubjectID)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "Dev One", claims.Name)
}

func TestJWTVerifierRejects(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, nil)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "wrong secret",
			token: signToken(t, "another-secret", jwt.MapClaims{"sub": "subject-1"}),
		},
		{
			name:  "missing subject",
			token: signToken(t, testSecret, jwt.MapClaims{"email": "dev@example.com"}),
		},
		{
			name:  "garbage",
			token: "not.a.token",
		},
		{
			name:  "empty",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), tt.token)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
		})
	}
}

func TestJWTVerifierRejectsUnsignedToken(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, nil)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "subject-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}
