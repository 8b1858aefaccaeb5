package handler

import (
	"log/slog"
	"time"

	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Routes is implemented by every handler group.
type Routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type RouterOptions struct {
	Logger         *slog.Logger
	Tokens         service.TokenService
	Limiter        middleware.Limiter // nil disables rate limiting
	RequestTimeout time.Duration      // zero leaves the request context alone
}

// NewRouter builds the engine. public groups are reachable without a token,
// protected groups sit behind the bearer token gate.
func NewRouter(opts RouterOptions, public, protected []Routes) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(opts.Logger),
		middleware.Errors(opts.Logger),
		middleware.Recovery(opts.Logger),
	)
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter, opts.Logger))
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	open := r.Group("")
	for _, routes := range public {
		routes.RegisterRoutes(open)
	}

	api := r.Group("")
	api.Use(middleware.AuthMiddleware(opts.Tokens))
	for _, routes := range protected {
		routes.RegisterRoutes(api)
	}

	return r
}
