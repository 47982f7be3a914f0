package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ResponseRoutes(r *gin.Engine) {
	responses := r.Group("/responses")
	responses.Use(middleware.RequireAuth())
	{
		responses.GET("", controllers.ListResponses)
		responses.GET("/:id", controllers.GetResponse)
		responses.GET("/user/section/:sectionId", controllers.GetUserSectionResponse)
		responses.POST("/save", controllers.SaveResponse)
		responses.POST("/:id/submit", controllers.SubmitResponse)
	}
}
