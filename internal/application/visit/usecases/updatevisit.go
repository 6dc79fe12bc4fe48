package usecases

import (
	"context"
	"fmt"
	"time"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/logger"
)

type UpdateVisitUseCase struct {
	visitRepo visit.Repository
	renderer  NotesRenderer
	logger    logger.Interface
}

func NewUpdateVisitUseCase(visitRepo visit.Repository, renderer NotesRenderer, logger logger.Interface) *UpdateVisitUseCase {
	return &UpdateVisitUseCase{visitRepo: visitRepo, renderer: renderer, logger: logger}
}

func (uc *UpdateVisitUseCase) Execute(ctx context.Context, id uint, req dto.UpdateVisitRequest) (*dto.VisitDTO, error) {
	v, err := uc.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ScheduledAt != nil || req.Technician != nil {
		var at time.Time
		if req.ScheduledAt != nil {
			at = *req.ScheduledAt
		}
		if err := v.Reschedule(at, req.Technician); err != nil {
			return nil, err
		}
	}

	// notes stay editable after completion so technicians can file a report
	if req.NotesMarkdown != nil {
		html, err := uc.renderer.Render(*req.NotesMarkdown)
		if err != nil {
			return nil, fmt.Errorf("failed to render visit notes: %w", err)
		}
		v.SetNotes(*req.NotesMarkdown, html)
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", id, "error", err)
		return nil, err
	}
	return dto.ToVisitDTO(v), nil
}
