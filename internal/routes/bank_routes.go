package routes

import (
	"forms_portal/internal/controllers"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"

	"github.com/gin-gonic/gin"
)

func BankRoutes(r *gin.Engine) {
	banks := r.Group("/banks")
	{
		banks.GET("", middleware.RequireAuth(), controllers.ListBanks)
		banks.GET("/:id", middleware.RequireAuth(), controllers.GetBank)

		banks.POST("", middleware.RequireRoles(models.RoleAdmin), controllers.CreateBank)
		banks.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.UpdateBank)
		banks.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteBank)
	}
}
