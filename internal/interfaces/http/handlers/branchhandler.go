package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type branchService interface {
	Create(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateBranchRequest) (*dto.BranchDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.BranchDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListBranchesResponse, error)
}

type BranchHandler struct {
	service branchService
	logger  logger.Interface
}

func NewBranchHandler(service branchService, logger logger.Interface) *BranchHandler {
	return &BranchHandler{service: service, logger: logger}
}

// CreateBranch godoc
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Param request body dto.CreateBranchRequest true "Branch data"
// @Success 201 {object} utils.APIResponse{data=dto.BranchDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed or unknown organization"
// @Failure 409 {object} utils.APIResponse "Name already used by the organization"
// @Router /branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create branch", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Branch created successfully")
}

// GetBranch handles GET /branches/:id
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "branch")
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

// ListBranches handles GET /branches
func (h *BranchHandler) ListBranches(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Branches, result.Total, result.Page, result.PageSize)
}

// UpdateBranch handles PATCH /branches/:id
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "branch")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Branch updated successfully", result)
}

// DeleteBranch handles DELETE /branches/:id
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "branch")
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
