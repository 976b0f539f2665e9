package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tempus/internal/infrastructure/config"
	"tempus/internal/interfaces/http/handlers"
	"tempus/internal/interfaces/http/middleware"
	"tempus/internal/shared/logger"
)

// Router wires the engine's HTTP surface: the operator API behind JWT
// auth, the workstation-facing endpoints behind workstation credentials,
// and the WebSocket countdown streams.
type Router struct {
	engine    *gin.Engine
	container *Container
	cfg       *config.Config
	logger    logger.Interface
}

// NewRouter builds the full dependency graph and the Gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	return &Router{
		engine:    engine,
		container: NewContainer(db, cfg, log),
		cfg:       cfg,
		logger:    log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	c := r.container

	handlers.RegisterValidators()

	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	// Workstation-facing endpoints. Identity comes from the enrollment
	// token headers; code validation and redemption are rate limited per
	// client IP to slow down code guessing.
	kiosk := v1.Group("")
	kiosk.Use(c.workstationMiddleware.Identify())
	{
		codes := kiosk.Group("/codes")
		{
			codes.POST("/validate", c.rateLimitMiddleware.Limit("validate"), c.sessionHandler.Validate)
			codes.POST("/redeem", c.rateLimitMiddleware.Limit("redeem"), c.sessionHandler.Start)
		}

		kiosk.GET("/sessions/:id/time", c.sessionHandler.GetTime)
		kiosk.POST("/sessions/:id/extensions", c.extensionHandler.Request)
	}

	// Operator API. Tokens are issued out of band by the token command.
	operator := v1.Group("")
	operator.Use(c.authMiddleware.RequireAuth())
	{
		sessions := operator.Group("/sessions")
		{
			sessions.POST("", c.sessionHandler.Create)
			sessions.GET("", c.sessionHandler.List)
			sessions.GET("/active", c.sessionHandler.Active)
			sessions.GET("/stats", c.sessionHandler.Stats)
			sessions.GET("/:id", c.sessionHandler.Get)
			sessions.POST("/:id/time", c.sessionHandler.AddTime)
			sessions.POST("/:id/terminate", c.sessionHandler.Terminate)
			sessions.POST("/:id/suspend", c.sessionHandler.Suspend)
			sessions.POST("/:id/resume", c.sessionHandler.Resume)
		}

		extensions := operator.Group("/extensions")
		{
			extensions.GET("", c.extensionHandler.List)
			extensions.POST("/:id/respond", c.extensionHandler.Respond)
		}

		workstations := operator.Group("/workstations")
		{
			workstations.POST("", c.registryHandler.EnrollWorkstation)
			workstations.GET("", c.registryHandler.ListWorkstations)
		}

		users := operator.Group("/users")
		{
			users.POST("", c.registryHandler.CreateUser)
			users.GET("", c.registryHandler.ListUsers)
		}

		operator.GET("/audit", c.auditHandler.List)
	}

	// Countdown streams. The per-session stream is open so a browser
	// timer page can subscribe by session ID alone; the per-workstation
	// stream is for enrolled kiosks.
	ws := r.engine.Group("/ws")
	{
		ws.GET("/sessions/:id", c.hubHandler.SessionWS)
		ws.GET("/workstations/:id",
			c.workstationMiddleware.Identify(),
			c.workstationMiddleware.RequireWorkstation(),
			c.hubHandler.WorkstationWS)
	}
}

// Container exposes the dependency container so the server command can
// register batch jobs and start the event relay.
func (r *Router) Container() *Container {
	return r.container
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
