package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"forms_portal/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(rate.Limit(50), 100))

	AuthRoutes(r)
	BankRoutes(r)
	SectionRoutes(r)
	QuestionRoutes(r)
	ResponseRoutes(r)
	StatsRoutes(r)
	UserRoutes(r)

	return r
}
