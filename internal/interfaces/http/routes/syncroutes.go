package routes

import (
	"github.com/gin-gonic/gin"

	"crmdesk/internal/interfaces/http/handlers"
)

type SyncRouteConfig struct {
	SyncHandler *handlers.SyncHandler
	// RateLimit guards every sync endpoint. Nil disables it.
	RateLimit gin.HandlerFunc
}

func SetupSyncRoutes(api *gin.RouterGroup, config *SyncRouteConfig) {
	sync := api.Group("/sync")
	if config.RateLimit != nil {
		sync.Use(config.RateLimit)
	}
	{
		sync.POST("/closed-tickets", config.SyncHandler.SyncClosedTickets)
		sync.GET("/closed-tickets", config.SyncHandler.SyncClosedTickets)

		sync.GET("/runs", config.SyncHandler.ListRuns)
		sync.GET("/runs/:id", config.SyncHandler.GetRun)
		sync.GET("/cursor", config.SyncHandler.GetCursor)
	}
}
