package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type visitService interface {
	Create(ctx context.Context, req dto.CreateVisitRequest) (*dto.VisitDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateVisitRequest) (*dto.VisitDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.VisitDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListVisitsResponse, error)
	Complete(ctx context.Context, id uint, at *time.Time) (*dto.VisitDTO, error)
}

type VisitHandler struct {
	service visitService
	logger  logger.Interface
}

func NewVisitHandler(service visitService, logger logger.Interface) *VisitHandler {
	return &VisitHandler{service: service, logger: logger}
}

// CreateVisit godoc
// @Summary Schedule visit
// @Tags visits
// @Accept json
// @Produce json
// @Param request body dto.CreateVisitRequest true "Visit data"
// @Success 201 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed, or unknown organization, branch or ticket"
// @Router /visits [post]
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req dto.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create visit", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Visit created successfully")
}

// GetVisit handles GET /visits/:id
func (h *VisitHandler) GetVisit(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "visit")
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

// ListVisits handles GET /visits
func (h *VisitHandler) ListVisits(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Visits, result.Total, result.Page, result.PageSize)
}

// UpdateVisit handles PATCH /visits/:id
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "visit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit updated successfully", result)
}

// DeleteVisit handles DELETE /visits/:id
func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "visit")
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

// CompleteVisit godoc
// @Summary Mark a visit as completed
// @Description completed_at defaults to now
// @Tags visits
// @Accept json
// @Produce json
// @Param id path int true "Visit ID"
// @Param request body dto.CompleteVisitRequest false "Completion time"
// @Success 200 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 404 {object} utils.APIResponse "Visit not found"
// @Failure 409 {object} utils.APIResponse "Visit already completed"
// @Router /visits/{id}/complete [post]
func (h *VisitHandler) CompleteVisit(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "visit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.CompleteVisitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	result, err := h.service.Complete(c.Request.Context(), id, req.CompletedAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit completed", result)
}
