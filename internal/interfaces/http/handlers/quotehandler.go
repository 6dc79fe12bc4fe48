package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type quoteService interface {
	Create(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateQuoteRequest) (*dto.QuoteDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.QuoteDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListQuotesResponse, error)
	ChangeStatus(ctx context.Context, id uint, status string) (*dto.QuoteDTO, error)
}

type QuoteHandler struct {
	service quoteService
	logger  logger.Interface
}

func NewQuoteHandler(service quoteService, logger logger.Interface) *QuoteHandler {
	return &QuoteHandler{service: service, logger: logger}
}

// CreateQuote godoc
// @Summary Create draft quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuoteRequest true "Quote data"
// @Success 201 {object} utils.APIResponse{data=dto.QuoteDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed, or unknown organization or requester"
// @Failure 409 {object} utils.APIResponse "Number collision"
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create quote", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Quote created successfully")
}

// GetQuote handles GET /quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "quote")
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

// ListQuotes handles GET /quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Quotes, result.Total, result.Page, result.PageSize)
}

// UpdateQuote handles PATCH /quotes/:id. Only drafts can be revised.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "quote")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote updated successfully", result)
}

// DeleteQuote handles DELETE /quotes/:id
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "quote")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ChangeQuoteStatus godoc
// @Summary Move a quote to another status
// @Description draft -> sent -> accepted|rejected; a sent quote may return to draft. accepted and rejected are terminal
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path int true "Quote ID"
// @Param request body dto.ChangeQuoteStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.QuoteDTO}
// @Failure 400 {object} utils.APIResponse "Unknown status"
// @Failure 404 {object} utils.APIResponse "Quote not found"
// @Failure 409 {object} utils.APIResponse "Transition not allowed"
// @Router /quotes/{id}/status [post]
func (h *QuoteHandler) ChangeQuoteStatus(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "quote")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ChangeQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote status updated", result)
}
