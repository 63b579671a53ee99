package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/identity"
	"github.com/taskforge/backend/pkg/httpcontext"
)

const claimsKey = "identity_claims"

// BearerAuth verifies the Authorization header on every protected request.
// There is no session state: each request is independently verified against
// the identity provider.
func BearerAuth(verifier identity.Verifier, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := extractBearer(ctx)
			if token == "" {
				unauthorized(ctx)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()

			claims, err := verifier.Verify(stdCtx, token)
			if err != nil {
				if domain.IsDomainError(err, domain.ErrCodeUpstream) {
					logger.Error("identity verification unavailable", zap.Error(err))
					respond(ctx, fasthttp.StatusBadGateway, "upstream service unavailable", domain.ErrCodeUpstream)
					return
				}
				logger.Warn("token rejected", zap.Error(err))
				unauthorized(ctx)
				return
			}

			ctx.SetUserValue(claimsKey, claims)
			next(ctx)
		}
	}
}

// ClaimsFromRequest returns the verified claims stored by BearerAuth.
func ClaimsFromRequest(ctx *fasthttp.RequestCtx) *identity.Claims {
	claims, _ := ctx.UserValue(claimsKey).(*identity.Claims)
	return claims
}

// extractBearer returns the token from a well-formed "Bearer <token>" header,
// or "" for a missing or malformed one.
func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func unauthorized(ctx *fasthttp.RequestCtx) {
	respond(ctx, fasthttp.StatusUnauthorized, "unauthorized", domain.ErrCodeUnauthorized)
}

func respond(ctx *fasthttp.RequestCtx, status int, message string, code domain.ErrorCode) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(map[string]string{"error": message, "code": string(code)})
	ctx.SetBody(body)
}
