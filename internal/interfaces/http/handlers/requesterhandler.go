package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/requester/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type requesterService interface {
	Create(ctx context.Context, req dto.CreateRequesterRequest) (*dto.RequesterDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateRequesterRequest) (*dto.RequesterDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.RequesterDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListRequestersResponse, error)
}

type RequesterHandler struct {
	service requesterService
	logger  logger.Interface
}

func NewRequesterHandler(service requesterService, logger logger.Interface) *RequesterHandler {
	return &RequesterHandler{service: service, logger: logger}
}

// CreateRequester godoc
// @Summary Create requester
// @Tags requesters
// @Accept json
// @Produce json
// @Param request body dto.CreateRequesterRequest true "Requester data"
// @Success 201 {object} utils.APIResponse{data=dto.RequesterDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed or unknown organization"
// @Failure 409 {object} utils.APIResponse "Email or remote id already registered"
// @Router /requesters [post]
func (h *RequesterHandler) CreateRequester(c *gin.Context) {
	var req dto.CreateRequesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create requester", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Requester created successfully")
}

// GetRequester handles GET /requesters/:id
func (h *RequesterHandler) GetRequester(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "requester")
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

// ListRequesters handles GET /requesters
func (h *RequesterHandler) ListRequesters(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Requesters, result.Total, result.Page, result.PageSize)
}

// UpdateRequester handles PATCH /requesters/:id
func (h *RequesterHandler) UpdateRequester(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "requester")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateRequesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requester updated successfully", result)
}

// DeleteRequester handles DELETE /requesters/:id
func (h *RequesterHandler) DeleteRequester(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "requester")
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
