package devserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/config"
	"github.com/skyfn/skyfn-console/internal/mock"
)

// Server bundles the echo application and the resources that need explicit
// shutdown.
type Server struct {
	Echo        *echo.Echo
	Hub         *Hub
	rateLimiter *RateLimiter
}

// New assembles the dev server over a freshly seeded mock store
func New(cfg *config.Config, storeOpts ...mock.StoreOption) *Server {
	store := mock.NewStore(storeOpts...)
	users := mock.NewUserService(store, nil)
	workspaces := mock.NewWorkspaceService(store)
	functions := mock.NewFunctionService(store)
	jobs := mock.NewJobService(store)

	registry := NewTokenRegistry()
	hub := NewHub()
	rateLimiter := NewRateLimiter()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(requestLogger())
	e.Use(RateLimit(rateLimiter))
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterRoutes(
		e,
		BearerAuth(registry),
		NewUserHandler(users, registry),
		NewWorkspaceHandler(workspaces),
		NewFunctionHandler(functions, jobs, hub),
		NewJobHandler(jobs),
		NewWSHandler(hub),
	)

	return &Server{Echo: e, Hub: hub, rateLimiter: rateLimiter}
}

// Stop releases background resources
func (s *Server) Stop() {
	s.rateLimiter.Stop()
}

// requestLogger logs every request with zerolog
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
