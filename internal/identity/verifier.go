// Package identity validates externally issued bearer credentials and
// extracts the stable subject identifier plus profile claims.
package identity

import "context"

// Claims are the profile attributes extracted from a verified credential.
type Claims struct {
	SubjectID string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// Verifier checks an opaque bearer token. Verification is stateless: every
// request is verified independently and nothing is cached.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
