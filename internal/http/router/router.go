package router

import (
	"github.com/gin-gonic/gin"

	"arbiterhq.io/arbiter/internal/http/handler"
	"arbiterhq.io/arbiter/internal/service"
	"arbiterhq.io/arbiter/internal/store"
)

func SetupRoutes(router *gin.Engine, services *service.Services, stores *store.Stores) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		arbitrationHandler := handler.NewArbitrationHandler(services.Coordinator())
		v1.POST("/arbitrations", arbitrationHandler.Arbitrate)

		debateHandler := handler.NewDebateHandler(services.Orchestrator(), stores.Verdicts())
		v1.GET("/debates/:id", debateHandler.Get)
	}
}
