package routes

import (
	"github.com/gin-gonic/gin"

	"crmdesk/internal/interfaces/http/handlers"
)

type CustomerRouteConfig struct {
	RequesterHandler *handlers.RequesterHandler
	EquipmentHandler *handlers.EquipmentHandler
}

func SetupCustomerRoutes(api *gin.RouterGroup, config *CustomerRouteConfig) {
	requesters := api.Group("/requesters")
	{
		requesters.POST("", config.RequesterHandler.CreateRequester)
		requesters.GET("", config.RequesterHandler.ListRequesters)
		requesters.GET("/:id", config.RequesterHandler.GetRequester)
		requesters.PATCH("/:id", config.RequesterHandler.UpdateRequester)
		requesters.DELETE("/:id", config.RequesterHandler.DeleteRequester)
	}

	equipment := api.Group("/equipment")
	{
		equipment.POST("", config.EquipmentHandler.CreateEquipment)
		equipment.GET("", config.EquipmentHandler.ListEquipment)
		equipment.GET("/:id", config.EquipmentHandler.GetEquipment)
		equipment.PATCH("/:id", config.EquipmentHandler.UpdateEquipment)
		equipment.DELETE("/:id", config.EquipmentHandler.DeleteEquipment)
	}
}
