package api

import (
	"Instalytics/internal/api/middleware"
	"Instalytics/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	logger.SetupGin(r)

	r.GET("/health", group.HealthHandler.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/insights", group.InsightsHandler.GetInsights)
		apiGroup.GET("/follower-history", group.InsightsHandler.GetFollowerHistory)
	}

	return r
}
