package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"

	"github.com/gin-gonic/gin"
)

func StatsRoutes(r *gin.Engine) {
	stats := r.Group("/stats")
	{
		stats.GET("/admin", middleware.RequireRoles(models.RoleAdmin), controllers.AdminStats)
		stats.GET("/agent", middleware.RequireRoles(models.RoleAgent), controllers.AgentStats)
	}
}
