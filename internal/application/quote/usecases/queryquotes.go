package usecases

import (
	"context"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type GetQuoteUseCase struct {
	quoteRepo quote.Repository
}

func NewGetQuoteUseCase(quoteRepo quote.Repository) *GetQuoteUseCase {
	return &GetQuoteUseCase{quoteRepo: quoteRepo}
}

func (uc *GetQuoteUseCase) Execute(ctx context.Context, id uint) (*dto.QuoteDTO, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToQuoteDTO(q), nil
}

type ListQuotesUseCase struct {
	quoteRepo quote.Repository
	logger    logger.Interface
}

func NewListQuotesUseCase(quoteRepo quote.Repository, logger logger.Interface) *ListQuotesUseCase {
	return &ListQuotesUseCase{quoteRepo: quoteRepo, logger: logger}
}

func (uc *ListQuotesUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListQuotesResponse, error) {
	qs, total, err := uc.quoteRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list quotes", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(qs, dto.ToQuoteDTO)
	return &dto.ListQuotesResponse{Quotes: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

type DeleteQuoteUseCase struct {
	quoteRepo quote.Repository
	logger    logger.Interface
}

func NewDeleteQuoteUseCase(quoteRepo quote.Repository, logger logger.Interface) *DeleteQuoteUseCase {
	return &DeleteQuoteUseCase{quoteRepo: quoteRepo, logger: logger}
}

// Execute removes a quote. Decided quotes are kept as a record.
func (uc *DeleteQuoteUseCase) Execute(ctx context.Context, id uint) error {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q.Status().IsTerminal() {
		return errors.NewConflictError("decided quotes cannot be deleted", q.Number())
	}
	if err := uc.quoteRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("quote deleted", "quote_id", id, "number", q.Number())
	return nil
}
