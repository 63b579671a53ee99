package middleware

import "github.com/valyala/fasthttp"

// CORS sets cross-origin headers for the configured origin and answers
// OPTIONS preflight requests with 204.
func CORS(allowedOrigin string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Response.Header.Set("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			ctx.Response.Header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			ctx.Response.Header.Set("Access-Control-Max-Age", "86400")

			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}
