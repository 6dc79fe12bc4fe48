package visit

import (
	"context"
	"time"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/application/visit/usecases"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create   *usecases.CreateVisitUseCase
	update   *usecases.UpdateVisitUseCase
	complete *usecases.CompleteVisitUseCase
	delete   *usecases.DeleteVisitUseCase
	get      *usecases.GetVisitUseCase
	list     *usecases.ListVisitsUseCase
}

func NewService(
	repo visit.Repository,
	orgRepo organization.Repository,
	branchRepo branch.Repository,
	ticketRepo ticket.Repository,
	renderer usecases.NotesRenderer,
	logger logger.Interface,
) *Service {
	return &Service{
		create:   usecases.NewCreateVisitUseCase(repo, orgRepo, branchRepo, ticketRepo, renderer, logger),
		update:   usecases.NewUpdateVisitUseCase(repo, renderer, logger),
		complete: usecases.NewCompleteVisitUseCase(repo, logger),
		delete:   usecases.NewDeleteVisitUseCase(repo, logger),
		get:      usecases.NewGetVisitUseCase(repo),
		list:     usecases.NewListVisitsUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateVisitRequest) (*dto.VisitDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateVisitRequest) (*dto.VisitDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) Complete(ctx context.Context, id uint, at *time.Time) (*dto.VisitDTO, error) {
	return s.complete.Execute(ctx, usecases.CompleteVisitCommand{VisitID: id, CompletedAt: at})
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.VisitDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListVisitsResponse, error) {
	return s.list.Execute(ctx, filter)
}
