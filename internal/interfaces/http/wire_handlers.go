package http

import (
	"crmdesk/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	organizationHandler *handlers.OrganizationHandler
	branchHandler       *handlers.BranchHandler
	requesterHandler    *handlers.RequesterHandler
	equipmentHandler    *handlers.EquipmentHandler
	quoteHandler        *handlers.QuoteHandler
	visitHandler        *handlers.VisitHandler
	ticketHandler       *handlers.TicketHandler
	syncHandler         *handlers.SyncHandler
}

func (c *Container) initHandlers() {
	s := c.svcs
	c.hdlrs = &allHandlers{
		healthHandler:       handlers.NewHealthHandler(c.db, c.redis, c.log),
		organizationHandler: handlers.NewOrganizationHandler(s.organization, c.log),
		branchHandler:       handlers.NewBranchHandler(s.branch, c.log),
		requesterHandler:    handlers.NewRequesterHandler(s.requester, c.log),
		equipmentHandler:    handlers.NewEquipmentHandler(s.equipment, c.log),
		quoteHandler:        handlers.NewQuoteHandler(s.quote, c.log),
		visitHandler:        handlers.NewVisitHandler(s.visit, c.log),
		ticketHandler:       handlers.NewTicketHandler(s.ticket, c.log),
		syncHandler:         handlers.NewSyncHandler(s.syncer, s.syncRuns, c.cfg.Sync.DefaultLookback(), c.log),
	}
}
