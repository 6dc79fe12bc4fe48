package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/equipment/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type equipmentService interface {
	Create(ctx context.Context, req dto.CreateEquipmentRequest) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateEquipmentRequest) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.EquipmentDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListEquipmentResponse, error)
}

type EquipmentHandler struct {
	service equipmentService
	logger  logger.Interface
}

func NewEquipmentHandler(service equipmentService, logger logger.Interface) *EquipmentHandler {
	return &EquipmentHandler{service: service, logger: logger}
}

// CreateEquipment godoc
// @Summary Register equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body dto.CreateEquipmentRequest true "Equipment data"
// @Success 201 {object} utils.APIResponse{data=dto.EquipmentDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed, or the branch belongs to another organization"
// @Failure 409 {object} utils.APIResponse "Serial number already registered"
// @Router /equipment [post]
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req dto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create equipment", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Equipment created successfully")
}

// GetEquipment handles GET /equipment/:id
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "equipment")
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

// ListEquipment handles GET /equipment
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Equipment, result.Total, result.Page, result.PageSize)
}

// UpdateEquipment handles PATCH /equipment/:id
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "equipment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment updated successfully", result)
}

// DeleteEquipment handles DELETE /equipment/:id
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "equipment")
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
