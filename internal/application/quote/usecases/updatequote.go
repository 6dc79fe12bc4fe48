package usecases

import (
	"context"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/shared/logger"
)

type UpdateQuoteUseCase struct {
	quoteRepo quote.Repository
	logger    logger.Interface
}

func NewUpdateQuoteUseCase(quoteRepo quote.Repository, logger logger.Interface) *UpdateQuoteUseCase {
	return &UpdateQuoteUseCase{quoteRepo: quoteRepo, logger: logger}
}

func (uc *UpdateQuoteUseCase) Execute(ctx context.Context, id uint, req dto.UpdateQuoteRequest) (*dto.QuoteDTO, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := q.Revise(req.Title, req.AmountCents); err != nil {
		return nil, err
	}

	if err := uc.quoteRepo.Update(ctx, q); err != nil {
		uc.logger.Errorw("failed to update quote", "quote_id", id, "error", err)
		return nil, err
	}
	return dto.ToQuoteDTO(q), nil
}
