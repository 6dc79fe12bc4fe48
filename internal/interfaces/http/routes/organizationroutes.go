package routes

import (
	"github.com/gin-gonic/gin"

	"crmdesk/internal/interfaces/http/handlers"
)

type OrganizationRouteConfig struct {
	OrganizationHandler *handlers.OrganizationHandler
	BranchHandler       *handlers.BranchHandler
}

// SetupOrganizationRoutes registers organizations and their branches.
func SetupOrganizationRoutes(api *gin.RouterGroup, config *OrganizationRouteConfig) {
	organizations := api.Group("/organizations")
	{
		organizations.POST("", config.OrganizationHandler.CreateOrganization)
		organizations.GET("", config.OrganizationHandler.ListOrganizations)
		organizations.GET("/:id", config.OrganizationHandler.GetOrganization)
		organizations.PATCH("/:id", config.OrganizationHandler.UpdateOrganization)
		organizations.DELETE("/:id", config.OrganizationHandler.DeleteOrganization)
	}

	branches := api.Group("/branches")
	{
		branches.POST("", config.BranchHandler.CreateBranch)
		branches.GET("", config.BranchHandler.ListBranches)
		branches.GET("/:id", config.BranchHandler.GetBranch)
		branches.PATCH("/:id", config.BranchHandler.UpdateBranch)
		branches.DELETE("/:id", config.BranchHandler.DeleteBranch)
	}
}
