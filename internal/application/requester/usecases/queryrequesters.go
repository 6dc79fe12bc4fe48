package usecases

import (
	"context"

	"crmdesk/internal/application/requester/dto"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type GetRequesterUseCase struct {
	requesterRepo requester.Repository
}

func NewGetRequesterUseCase(requesterRepo requester.Repository) *GetRequesterUseCase {
	return &GetRequesterUseCase{requesterRepo: requesterRepo}
}

func (uc *GetRequesterUseCase) Execute(ctx context.Context, id uint) (*dto.RequesterDTO, error) {
	r, err := uc.requesterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToRequesterDTO(r), nil
}

type ListRequestersUseCase struct {
	requesterRepo requester.Repository
	logger        logger.Interface
}

func NewListRequestersUseCase(requesterRepo requester.Repository, logger logger.Interface) *ListRequestersUseCase {
	return &ListRequestersUseCase{requesterRepo: requesterRepo, logger: logger}
}

func (uc *ListRequestersUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListRequestersResponse, error) {
	rs, total, err := uc.requesterRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list requesters", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(rs, dto.ToRequesterDTO)
	return &dto.ListRequestersResponse{Requesters: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

type DeleteRequesterUseCase struct {
	requesterRepo requester.Repository
	logger        logger.Interface
}

func NewDeleteRequesterUseCase(requesterRepo requester.Repository, logger logger.Interface) *DeleteRequesterUseCase {
	return &DeleteRequesterUseCase{requesterRepo: requesterRepo, logger: logger}
}

func (uc *DeleteRequesterUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.requesterRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("requester deleted", "requester_id", id)
	return nil
}
