package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"

	"github.com/gin-gonic/gin"
)

func QuestionRoutes(r *gin.Engine) {
	questions := r.Group("/questions")
	questions.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		questions.POST("", controllers.CreateQuestion)
		questions.PUT("/:id", controllers.UpdateQuestion)
		questions.DELETE("/:id", controllers.DeleteQuestion)
	}
}
