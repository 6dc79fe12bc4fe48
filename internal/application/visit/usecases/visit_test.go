package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/infrastructure/repository"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/services/markdown"
)

func TestVisitUseCases(t *testing.T) {
	gdb := testdb.New(t)
	ctx := context.Background()
	log := logger.NewDiscard()
	renderer := markdown.NewRenderer()

	orgRepo := repository.NewOrganizationRepository(gdb)
	visitRepo := repository.NewVisitRepository(gdb)
	org, err := organization.NewOrganization("Acme", "", "", "")
	require.NoError(t, err)
	require.NoError(t, orgRepo.Create(ctx, org))

	create := NewCreateVisitUseCase(visitRepo, orgRepo,
		repository.NewBranchRepository(gdb), repository.NewTicketRepository(gdb), renderer, log)

	scheduled := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)

	t.Run("unsynced ticket", func(t *testing.T) {
		ticketID := int64(555)
		_, err := create.Execute(ctx, dto.CreateVisitRequest{
			OrganizationID: org.ID(), TicketID: &ticketID, ScheduledAt: scheduled, Technician: "Luis",
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	created, err := create.Execute(ctx, dto.CreateVisitRequest{
		OrganizationID: org.ID(),
		ScheduledAt:    scheduled,
		Technician:     "Luis",
		NotesMarkdown:  "Replaced **fuser**<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Contains(t, created.NotesHTML, "<strong>fuser</strong>")
	assert.NotContains(t, created.NotesHTML, "<script>")

	notes := "Follow-up in _two_ weeks"
	updated, err := NewUpdateVisitUseCase(visitRepo, renderer, log).Execute(ctx, created.ID, dto.UpdateVisitRequest{NotesMarkdown: &notes})
	require.NoError(t, err)
	assert.Contains(t, updated.NotesHTML, "<em>two</em>")

	complete := NewCompleteVisitUseCase(visitRepo, log)
	complete.nowFn = func() time.Time { return scheduled.Add(2 * time.Hour) }

	done, err := complete.Execute(ctx, CompleteVisitCommand{VisitID: created.ID})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(scheduled.Add(2*time.Hour)))

	_, err = complete.Execute(ctx, CompleteVisitCommand{VisitID: created.ID})
	assert.True(t, apperrors.IsConflictError(err))

	later := scheduled.Add(24 * time.Hour)
	_, err = NewUpdateVisitUseCase(visitRepo, renderer, log).Execute(ctx, created.ID, dto.UpdateVisitRequest{ScheduledAt: &later})
	assert.True(t, apperrors.IsConflictError(err), "completed visits cannot be rescheduled")
}
