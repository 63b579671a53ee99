package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/identity"
	"github.com/taskforge/backend/pkg/httpcontext"
)

type stubVerifier struct {
	claims *identity.Claims
	err    error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*identity.Claims, error) {
	return v.claims, v.err
}

func buildCtx(method, uri, authHeader string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestBearerAuthPassesClaims(t *testing.T) {
	verifier := &stubVerifier{claims: &identity.Claims{SubjectID: "sub-1"}}
	adapter := httpcontext.NewAdapter(time.Second)

	var seen *identity.Claims
	handler := BearerAuth(verifier, adapter, nil)(func(ctx *fasthttp.RequestCtx) {
		seen = ClaimsFromRequest(ctx)
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	ctx := buildCtx("GET", "/task/my", "Bearer some-token")
	handler(ctx)

	require.NotNil(t, seen)
	assert.Equal(t, "sub-1", seen.SubjectID)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestBearerAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	verifier := &stubVerifier{claims: &identity.Claims{SubjectID: "sub-1"}}
	adapter := httpcontext.NewAdapter(time.Second)

	handler := BearerAuth(verifier, adapter, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run without a valid bearer token")
	})

	for _, header := range []string{"", "Basic dXNlcg==", "Bearer", "token-without-scheme"} {
		ctx := buildCtx("GET", "/task/my", header)
		handler(ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode(), "header %q", header)
		assert.Contains(t, string(ctx.Response.Body()), "unauthorized")
	}
}

func TestBearerAuthRejectsInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthorized}
	adapter := httpcontext.NewAdapter(time.Second)

	handler := BearerAuth(verifier, adapter, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run for a rejected token")
	})

	ctx := buildCtx("GET", "/task/my", "Bearer rejected")
	handler(ctx)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestBearerAuthUpstreamFailure(t *testing.T) {
	verifier := &stubVerifier{err: domain.NewError(domain.ErrCodeUpstream, "identity provider error")}
	adapter := httpcontext.NewAdapter(time.Second)

	handler := BearerAuth(verifier, adapter, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run when verification is unavailable")
	})

	ctx := buildCtx("GET", "/task/my", "Bearer some-token")
	handler(ctx)
	assert.Equal(t, fasthttp.StatusBadGateway, ctx.Response.StatusCode())
}
