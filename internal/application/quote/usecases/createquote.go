package usecases

import (
	"context"
	"fmt"

	"crmdesk/internal/application/quote/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/constants"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/id"
	"crmdesk/internal/shared/logger"
)

// numberAttempts bounds retries when a freshly generated number collides.
const numberAttempts = 3

type CreateQuoteUseCase struct {
	quoteRepo     quote.Repository
	orgRepo       organization.Repository
	requesterRepo requester.Repository
	logger        logger.Interface
	newNumber     func() (string, error)
}

func NewCreateQuoteUseCase(
	quoteRepo quote.Repository,
	orgRepo organization.Repository,
	requesterRepo requester.Repository,
	logger logger.Interface,
) *CreateQuoteUseCase {
	return &CreateQuoteUseCase{
		quoteRepo:     quoteRepo,
		orgRepo:       orgRepo,
		requesterRepo: requesterRepo,
		logger:        logger,
		newNumber:     id.NewQuoteNumber,
	}
}

func (uc *CreateQuoteUseCase) Execute(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteDTO, error) {
	uc.logger.Infow("executing create quote use case", "organization_id", req.OrganizationID, "title", req.Title)

	if err := uc.validateReferences(ctx, req); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	for attempt := 1; ; attempt++ {
		number, err := uc.newNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate quote number: %w", err)
		}

		q, err := quote.NewQuote(number, req.OrganizationID, req.RequesterID, req.Title, req.AmountCents, currency)
		if err != nil {
			return nil, err
		}

		err = uc.quoteRepo.Create(ctx, q)
		if err == nil {
			uc.logger.Infow("quote created", "quote_id", q.ID(), "number", q.Number())
			return dto.ToQuoteDTO(q), nil
		}
		if !errors.IsConflictError(err) || attempt == numberAttempts {
			uc.logger.Errorw("failed to create quote", "number", number, "attempt", attempt, "error", err)
			return nil, err
		}
		uc.logger.Warnw("quote number collision, regenerating", "number", number)
	}
}

func (uc *CreateQuoteUseCase) validateReferences(ctx context.Context, req dto.CreateQuoteRequest) error {
	if _, err := uc.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("organization does not exist", "organization_id")
		}
		return err
	}
	if req.RequesterID == nil {
		return nil
	}
	if _, err := uc.requesterRepo.GetByID(ctx, *req.RequesterID); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("requester does not exist", "requester_id")
		}
		return err
	}
	return nil
}
