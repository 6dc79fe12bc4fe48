package routes

import (
	"github.com/gin-gonic/gin"

	"crmdesk/internal/interfaces/http/handlers"
)

type ServiceRouteConfig struct {
	QuoteHandler  *handlers.QuoteHandler
	VisitHandler  *handlers.VisitHandler
	TicketHandler *handlers.TicketHandler
}

// SetupServiceRoutes registers quotes, visits and the read-only ticket store.
func SetupServiceRoutes(api *gin.RouterGroup, config *ServiceRouteConfig) {
	quotes := api.Group("/quotes")
	{
		quotes.POST("", config.QuoteHandler.CreateQuote)
		quotes.GET("", config.QuoteHandler.ListQuotes)

		// action endpoints before the generic /:id routes
		quotes.POST("/:id/status", config.QuoteHandler.ChangeQuoteStatus)

		quotes.GET("/:id", config.QuoteHandler.GetQuote)
		quotes.PATCH("/:id", config.QuoteHandler.UpdateQuote)
		quotes.DELETE("/:id", config.QuoteHandler.DeleteQuote)
	}

	visits := api.Group("/visits")
	{
		visits.POST("", config.VisitHandler.CreateVisit)
		visits.GET("", config.VisitHandler.ListVisits)
		visits.POST("/:id/complete", config.VisitHandler.CompleteVisit)
		visits.GET("/:id", config.VisitHandler.GetVisit)
		visits.PATCH("/:id", config.VisitHandler.UpdateVisit)
		visits.DELETE("/:id", config.VisitHandler.DeleteVisit)
	}

	// tickets are written only by the sync
	tickets := api.Group("/tickets")
	{
		tickets.GET("", config.TicketHandler.ListTickets)
		tickets.GET("/:id", config.TicketHandler.GetTicket)
	}
}
