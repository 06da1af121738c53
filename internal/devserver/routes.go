package devserver

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the canonical resource paths. Registration and
// login are public; everything else requires a bearer token.
func RegisterRoutes(
	e *echo.Echo,
	auth echo.MiddlewareFunc,
	userHandler *UserHandler,
	workspaceHandler *WorkspaceHandler,
	functionHandler *FunctionHandler,
	jobHandler *JobHandler,
	wsHandler *WSHandler,
) {
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/me", userHandler.Me, auth)

	workspaces := e.Group("/workspaces", auth)
	workspaces.GET("/", workspaceHandler.List)
	workspaces.POST("/", workspaceHandler.Create)
	workspaces.GET("/:id", workspaceHandler.Get)
	workspaces.PUT("/:id", workspaceHandler.Update)
	workspaces.DELETE("/:id", workspaceHandler.Delete)
	workspaces.POST("/:id/auth-keys", workspaceHandler.GenerateAuthKey)
	workspaces.GET("/:id/metrics", workspaceHandler.Metrics)
	workspaces.GET("/:id/functions", workspaceHandler.Functions)

	functions := e.Group("/functions", auth)
	functions.GET("/", functionHandler.List)
	functions.POST("/", functionHandler.Create)
	functions.GET("/:id", functionHandler.Get)
	functions.PUT("/:id", functionHandler.Update)
	functions.DELETE("/:id", functionHandler.Delete)
	functions.POST("/:id/deploy", functionHandler.Deploy)
	functions.POST("/:id/invoke", functionHandler.Invoke)
	functions.GET("/:id/jobs", functionHandler.Jobs)
	functions.GET("/:id/metrics", functionHandler.Metrics)

	jobs := e.Group("/jobs", auth)
	jobs.GET("/:id", jobHandler.Get)

	e.GET("/ws/jobs", wsHandler.JobStream, auth)
}
