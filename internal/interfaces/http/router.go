package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"crmdesk/internal/interfaces/http/middleware"
	"crmdesk/internal/interfaces/http/routes"

	_ "crmdesk/docs"
)

const syncRateLimitScope = "sync"

// SetupRoutes configures the middleware chain and every HTTP route.
func (c *Container) SetupRoutes() {
	r := c.engine

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(c.log))
	r.Use(middleware.Recovery(c.log))
	r.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	r.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	r.GET("/version", c.hdlrs.healthHandler.Version)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	routes.SetupOrganizationRoutes(api, &routes.OrganizationRouteConfig{
		OrganizationHandler: c.hdlrs.organizationHandler,
		BranchHandler:       c.hdlrs.branchHandler,
	})
	routes.SetupCustomerRoutes(api, &routes.CustomerRouteConfig{
		RequesterHandler: c.hdlrs.requesterHandler,
		EquipmentHandler: c.hdlrs.equipmentHandler,
	})
	routes.SetupServiceRoutes(api, &routes.ServiceRouteConfig{
		QuoteHandler:  c.hdlrs.quoteHandler,
		VisitHandler:  c.hdlrs.visitHandler,
		TicketHandler: c.hdlrs.ticketHandler,
	})

	syncRoutes := &routes.SyncRouteConfig{SyncHandler: c.hdlrs.syncHandler}
	if c.rateLimiter != nil {
		syncRoutes.RateLimit = middleware.RateLimit(c.rateLimiter, syncRateLimitScope, c.log)
	}
	routes.SetupSyncRoutes(api, syncRoutes)
}

// GetEngine returns the gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
