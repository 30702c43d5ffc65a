package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/interfaces/http/handlers"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
)

type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// LoginLimiter guards register and login; nil disables it.
	LoginLimiter gin.HandlerFunc
}

func SetupAuthRoutes(api *gin.RouterGroup, config *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		public := []gin.HandlerFunc{}
		if config.LoginLimiter != nil {
			public = append(public, config.LoginLimiter)
		}

		auth.POST("/register", append(public, config.AuthHandler.Register)...)
		auth.POST("/login", append(public, config.AuthHandler.Login)...)

		auth.GET("/me",
			config.AuthMiddleware.RequireAuth(),
			config.AuthHandler.GetCurrentUser)
		auth.PUT("/profile",
			config.AuthMiddleware.RequireAuth(),
			config.AuthHandler.UpdateProfile)
	}
}
