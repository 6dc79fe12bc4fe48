package usecases

import (
	"context"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/shared/logger"
)

type ChangeQuoteStatusCommand struct {
	QuoteID uint
	Status  string
}

type ChangeQuoteStatusUseCase struct {
	quoteRepo quote.Repository
	logger    logger.Interface
}

func NewChangeQuoteStatusUseCase(quoteRepo quote.Repository, logger logger.Interface) *ChangeQuoteStatusUseCase {
	return &ChangeQuoteStatusUseCase{quoteRepo: quoteRepo, logger: logger}
}

func (uc *ChangeQuoteStatusUseCase) Execute(ctx context.Context, cmd ChangeQuoteStatusCommand) (*dto.QuoteDTO, error) {
	uc.logger.Infow("executing change quote status use case", "quote_id", cmd.QuoteID, "status", cmd.Status)

	target, err := quote.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	q, err := uc.quoteRepo.GetByID(ctx, cmd.QuoteID)
	if err != nil {
		return nil, err
	}

	from := q.Status()
	if err := q.TransitionTo(target); err != nil {
		uc.logger.Warnw("rejected quote status change", "quote_id", cmd.QuoteID, "from", from, "to", target)
		return nil, err
	}

	if err := uc.quoteRepo.Update(ctx, q); err != nil {
		uc.logger.Errorw("failed to persist quote status", "quote_id", cmd.QuoteID, "error", err)
		return nil, err
	}

	uc.logger.Infow("quote status changed", "quote_id", cmd.QuoteID, "from", from, "to", target)
	return dto.ToQuoteDTO(q), nil
}
