package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
)

func TestRemoteVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"subject-9","email":"u@example.com","name":"U"}`))
	}))
	defer srv.Close()

	verifier := NewRemoteVerifier(srv.URL, time.Second, nil)

	claims, err := verifier.Verify(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.Equal(t, "subject-9", claims.SubjectID)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestRemoteVerifierRejection(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode domain.ErrorCode
	}{
		{"provider says 401", http.StatusUnauthorized, `{"error":"expired"}`, domain.ErrCodeUnauthorized},
		{"provider says 403", http.StatusForbidden, `{}`, domain.ErrCodeUnauthorized},
		{"provider down", http.StatusInternalServerError, "", domain.ErrCodeUpstream},
		{"claims without subject", http.StatusOK, `{"email":"u@example.com"}`, domain.ErrCodeUnauthorized},
		{"malformed claims", http.StatusOK, `not json`, domain.ErrCodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			verifier := NewRemoteVerifier(srv.URL, time.Second, nil)
			_, err := verifier.Verify(context.Background(), "some-token")
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestRemoteVerifierUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	verifier := NewRemoteVerifier(srv.URL, time.Second, nil)
	_, err := verifier.Verify(context.Background(), "some-token")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUpstream))
}
