package routes

import (
	"github.com/gin-gonic/gin"

	complainthandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/complaint"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

type ComplaintRouteConfig struct {
	ComplaintHandler *complainthandlers.Handler
	AuthMiddleware   *middleware.AuthMiddleware
	// CreateLimiter guards complaint creation; nil disables it.
	CreateLimiter gin.HandlerFunc
}

func SetupComplaintRoutes(api *gin.RouterGroup, config *ComplaintRouteConfig) {
	complaints := api.Group("/complaints")
	complaints.Use(config.AuthMiddleware.RequireAuth())
	{
		create := []gin.HandlerFunc{authorization.RequireRoles(authorization.RoleCitizen)}
		if config.CreateLimiter != nil {
			create = append(create, config.CreateLimiter)
		}

		// Collection operations (no ID parameter)
		complaints.POST("", append(create, config.ComplaintHandler.CreateComplaint)...)
		complaints.GET("",
			config.ComplaintHandler.ListComplaints)

		// Must come BEFORE /:id
		complaints.GET("/stats/overview",
			authorization.RequireRoles(authorization.RoleAdmin, authorization.RoleDepartmentOfficer),
			config.ComplaintHandler.GetComplaintStats)

		complaints.PUT("/:id/status",
			authorization.RequireRoles(authorization.RoleAdmin, authorization.RoleDepartmentOfficer),
			config.ComplaintHandler.UpdateComplaintStatus)
		complaints.PUT("/:id/rate",
			authorization.RequireRoles(authorization.RoleCitizen),
			config.ComplaintHandler.RateComplaint)

		complaints.GET("/:id",
			config.ComplaintHandler.GetComplaint)
		complaints.DELETE("/:id",
			authorization.RequireRoles(authorization.RoleCitizen, authorization.RoleAdmin),
			config.ComplaintHandler.DeleteComplaint)
	}
}
