package usecases

import (
	"context"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type GetVisitUseCase struct {
	visitRepo visit.Repository
}

func NewGetVisitUseCase(visitRepo visit.Repository) *GetVisitUseCase {
	return &GetVisitUseCase{visitRepo: visitRepo}
}

func (uc *GetVisitUseCase) Execute(ctx context.Context, id uint) (*dto.VisitDTO, error) {
	v, err := uc.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToVisitDTO(v), nil
}

type ListVisitsUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewListVisitsUseCase(visitRepo visit.Repository, logger logger.Interface) *ListVisitsUseCase {
	return &ListVisitsUseCase{visitRepo: visitRepo, logger: logger}
}

func (uc *ListVisitsUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListVisitsResponse, error) {
	vs, total, err := uc.visitRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list visits", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(vs, dto.ToVisitDTO)
	return &dto.ListVisitsResponse{Visits: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

type DeleteVisitUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewDeleteVisitUseCase(visitRepo visit.Repository, logger logger.Interface) *DeleteVisitUseCase {
	return &DeleteVisitUseCase{visitRepo: visitRepo, logger: logger}
}

func (uc *DeleteVisitUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.visitRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("visit deleted", "visit_id", id)
	return nil
}
