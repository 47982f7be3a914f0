package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		users.GET("", controllers.ListUsers)
		users.DELETE("/:id", controllers.DeleteUser)
	}
}
