package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"

	"github.com/gin-gonic/gin"
)

func SectionRoutes(r *gin.Engine) {
	sections := r.Group("/sections")
	{
		sections.GET("", middleware.RequireAuth(), controllers.ListSections)
		sections.GET("/:id", middleware.RequireAuth(), controllers.GetSection)

		sections.POST("", middleware.RequireRoles(models.RoleAdmin), controllers.CreateSection)
		sections.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.UpdateSection)
		sections.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteSection)
	}
}
