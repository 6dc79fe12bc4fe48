// Package quote is the application service behind /api/quotes.
package quote

import (
	"context"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/application/quote/usecases"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create       *usecases.CreateQuoteUseCase
	update       *usecases.UpdateQuoteUseCase
	changeStatus *usecases.ChangeQuoteStatusUseCase
	delete       *usecases.DeleteQuoteUseCase
	get          *usecases.GetQuoteUseCase
	list         *usecases.ListQuotesUseCase
}

func NewService(repo quote.Repository, orgRepo organization.Repository, requesterRepo requester.Repository, logger logger.Interface) *Service {
	return &Service{
		create:       usecases.NewCreateQuoteUseCase(repo, orgRepo, requesterRepo, logger),
		update:       usecases.NewUpdateQuoteUseCase(repo, logger),
		changeStatus: usecases.NewChangeQuoteStatusUseCase(repo, logger),
		delete:       usecases.NewDeleteQuoteUseCase(repo, logger),
		get:          usecases.NewGetQuoteUseCase(repo),
		list:         usecases.NewListQuotesUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateQuoteRequest) (*dto.QuoteDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) ChangeStatus(ctx context.Context, id uint, status string) (*dto.QuoteDTO, error) {
	return s.changeStatus.Execute(ctx, usecases.ChangeQuoteStatusCommand{QuoteID: id, Status: status})
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.QuoteDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListQuotesResponse, error) {
	return s.list.Execute(ctx, filter)
}
