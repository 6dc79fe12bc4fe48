package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type organizationService interface {
	Create(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateOrganizationRequest) (*dto.OrganizationDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.OrganizationDTO, error)
	List(ctx context.Context, filter query.ListFilter) (*dto.ListOrganizationsResponse, error)
}

type OrganizationHandler struct {
	service organizationService
	logger  logger.Interface
}

func NewOrganizationHandler(service organizationService, logger logger.Interface) *OrganizationHandler {
	return &OrganizationHandler{service: service, logger: logger}
}

// CreateOrganization godoc
// @Summary Create organization
// @Description The name is normalized (trimmed, collapsed, upper case) and must be unique
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} utils.APIResponse{data=dto.OrganizationDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 409 {object} utils.APIResponse "Organization already exists"
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create organization", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Organization created successfully")
}

// GetOrganization godoc
// @Summary Get organization
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} utils.APIResponse{data=dto.OrganizationDTO}
// @Failure 404 {object} utils.APIResponse "Organization not found"
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "organization")
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

// ListOrganizations godoc
// @Summary List organizations
// @Description Filters: name, name__contains, domain, domain__contains, created__from, created__to
// @Tags organizations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc" default(desc)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.OrganizationDTO}}
// @Failure 400 {object} utils.APIResponse "Unknown filter"
// @Router /organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
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

	utils.ListSuccessResponse(c, result.Organizations, result.Total, result.Page, result.PageSize)
}

// UpdateOrganization godoc
// @Summary Update organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.OrganizationDTO}
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 404 {object} utils.APIResponse "Organization not found"
// @Failure 409 {object} utils.APIResponse "Name already taken"
// @Router /organizations/{id} [patch]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "organization")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update organization", "organization_id", id, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Organization updated successfully", result)
}

// DeleteOrganization godoc
// @Summary Delete organization
// @Tags organizations
// @Param id path int true "Organization ID"
// @Success 204 "No Content"
// @Failure 404 {object} utils.APIResponse "Organization not found"
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "organization")
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
