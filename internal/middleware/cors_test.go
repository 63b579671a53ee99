package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestCORSSetsHeaders(t *testing.T) {
	handler := CORS("https://app.example.com")(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	ctx := buildCtx("GET", "/task/my", "")
	handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "https://app.example.com", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Contains(t, string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")), "PATCH")
	assert.Contains(t, string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), "Authorization")
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS("https://app.example.com")(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("preflight must not reach the handler")
	})

	ctx := buildCtx("OPTIONS", "/task/save", "")
	handler(ctx)

	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
}

func TestCORSDefaultsToWildcard(t *testing.T) {
	handler := CORS("")(func(ctx *fasthttp.RequestCtx) {})

	ctx := buildCtx("GET", "/health", "")
	handler(ctx)

	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
}
