package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskforge/backend/api/handler"
	"github.com/taskforge/backend/internal/metrics"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New wires the public HTTP surface. Every /auth and /task route sits behind
// the bearer-token gate; /health and /metrics stay open.
func New(handlers Handlers, auth Middleware, cors Middleware, m *metrics.Metrics) *router.Router {
	r := router.New()

	wrap := func(route string, h fasthttp.RequestHandler) fasthttp.RequestHandler {
		if m != nil {
			h = m.Instrument(route, h)
		}
		if cors != nil {
			h = cors(h)
		}
		return h
	}
	protected := func(route string, h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return wrap(route, auth(h))
	}

	r.GET("/health", wrap("/health", handlers.Health.Check))
	if m != nil {
		r.GET("/metrics", m.Handler())
	}

	r.POST("/auth/verify", protected("/auth/verify", handlers.Auth.Verify))

	r.POST("/task/generate-tasks", protected("/task/generate-tasks", handlers.Task.Generate))
	r.POST("/task/save", protected("/task/save", handlers.Task.Save))
	r.GET("/task/my", protected("/task/my", handlers.Task.List))
	r.PATCH("/task/{id}", protected("/task/{id}", handlers.Task.SetStatus))
	r.DELETE("/task/{id}", protected("/task/{id}", handlers.Task.Delete))

	// Preflight requests carry no bearer token, so OPTIONS terminates in the
	// CORS middleware before auth runs.
	if cors != nil {
		r.OPTIONS("/{path:*}", cors(func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		}))
	}

	return r
}
