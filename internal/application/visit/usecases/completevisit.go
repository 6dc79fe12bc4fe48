package usecases

import (
	"context"
	"time"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/logger"
)

type CompleteVisitCommand struct {
	VisitID     uint
	CompletedAt *time.Time
}

type CompleteVisitUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
	nowFn     func() time.Time
}

func NewCompleteVisitUseCase(visitRepo visit.Repository, logger logger.Interface) *CompleteVisitUseCase {
	return &CompleteVisitUseCase{visitRepo: visitRepo, logger: logger, nowFn: time.Now}
}

func (uc *CompleteVisitUseCase) Execute(ctx context.Context, cmd CompleteVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing complete visit use case", "visit_id", cmd.VisitID)

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		return nil, err
	}

	at := uc.nowFn()
	if cmd.CompletedAt != nil {
		at = *cmd.CompletedAt
	}
	if err := v.Complete(at); err != nil {
		return nil, err
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to complete visit", "visit_id", cmd.VisitID, "error", err)
		return nil, err
	}

	uc.logger.Infow("visit completed", "visit_id", cmd.VisitID, "completed_at", at)
	return dto.ToVisitDTO(v), nil
}
