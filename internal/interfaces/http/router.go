package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/interfaces/http/routes"
	"github.com/civictrack/civictrack/internal/shared/constants"
	"github.com/civictrack/civictrack/internal/shared/utils"

	_ "github.com/civictrack/civictrack/docs"
)

const bytesPerMB = 1 << 20

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	cfg := c.cfg

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	c.engine.HandleMethodNotAllowed = true
	c.engine.NoRoute(func(ctx *gin.Context) {
		utils.ErrorResponse(ctx, http.StatusNotFound, constants.ErrMsgResourceNotFound)
	})
	c.engine.NoMethod(func(ctx *gin.Context) {
		utils.ErrorResponse(ctx, http.StatusMethodNotAllowed, constants.ErrMsgMethodNotAllowed)
	})

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api")
	api.Use(middleware.SecurityHeaders())
	api.Use(middleware.BodyLimit(int64(cfg.Server.MaxBodyMB) * bytesPerMB))

	api.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		LoginLimiter:   c.rateLimitMiddleware(c.loginLimiter, "auth"),
	})

	routes.SetupComplaintRoutes(api, &routes.ComplaintRouteConfig{
		ComplaintHandler: c.hdlrs.complaintHandler,
		AuthMiddleware:   c.authMiddleware,
		CreateLimiter:    c.rateLimitMiddleware(c.createLimiter, "complaint_create"),
	})
}
