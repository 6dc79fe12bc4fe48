package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type ticketService interface {
	Get(ctx context.Context, id int64) (*dto.TicketDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListTicketsResponse, error)
}

// TicketHandler exposes synced tickets read-only; Freshdesk stays the source of truth.
type TicketHandler struct {
	service ticketService
	logger  logger.Interface
}

func NewTicketHandler(service ticketService, logger logger.Interface) *TicketHandler {
	return &TicketHandler{service: service, logger: logger}
}

// ListTickets godoc
// @Summary List synced tickets
// @Description Filters: status, status__in, organization_id, requester_id, subject__contains, requester_email, updated__from, updated__to
// @Tags tickets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param status__in query string false "Comma separated status codes" example(4,5)
// @Param updated__from query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.TicketDTO}}
// @Failure 400 {object} utils.APIResponse "Unknown filter or bad value"
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	filter, err := utils.ParseListFilter(c, dto.FilterFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetTicket godoc
// @Summary Get a synced ticket
// @Tags tickets
// @Produce json
// @Param id path int true "Freshdesk ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse "Ticket not synced"
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := utils.ParseInt64Param(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
