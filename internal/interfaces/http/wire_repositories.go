package http

import (
	"gorm.io/gorm"

	"crmdesk/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	organizationRepo *repository.OrganizationRepository
	branchRepo       *repository.BranchRepository
	requesterRepo    *repository.RequesterRepository
	equipmentRepo    *repository.EquipmentRepository
	quoteRepo        *repository.QuoteRepository
	visitRepo        *repository.VisitRepository
	ticketRepo       *repository.TicketRepository
	syncRunRepo      *repository.SyncRunRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		organizationRepo: repository.NewOrganizationRepository(db),
		branchRepo:       repository.NewBranchRepository(db),
		requesterRepo:    repository.NewRequesterRepository(db),
		equipmentRepo:    repository.NewEquipmentRepository(db),
		quoteRepo:        repository.NewQuoteRepository(db),
		visitRepo:        repository.NewVisitRepository(db),
		ticketRepo:       repository.NewTicketRepository(db),
		syncRunRepo:      repository.NewSyncRunRepository(db),
	}
}
