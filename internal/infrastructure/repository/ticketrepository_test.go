package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/infrastructure/persistence/testdb"
)

func closedTicket(t *testing.T, id int64, subject string, updated time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.Snapshot{
		ID:           id,
		Subject:      subject,
		Status:       ticket.StatusClosed,
		Priority:     2,
		CustomFields: map[string]any{"cf_branch": "Centro"},
		CreatedAt:    updated.Add(-time.Hour),
		UpdatedAt:    updated,
	})
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_UpsertIsIdempotent(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	updated := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, closedTicket(t, 101, "Printer jam", updated)))
	var first models.TicketModel
	require.NoError(t, gdb.First(&first, 101).Error)

	require.NoError(t, repo.Upsert(ctx, closedTicket(t, 101, "Printer jam", updated)))
	var second models.TicketModel
	require.NoError(t, gdb.First(&second, 101).Error)

	assert.Equal(t, first.RemoteUpdatedAt.UTC(), second.RemoteUpdatedAt.UTC())
	assert.Equal(t, first.Subject, second.Subject)

	var count int64
	require.NoError(t, gdb.Model(&models.TicketModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTicketRepository_UpsertOverwritesMutableColumns(t *testing.T) {
	repo := NewTicketRepository(testdb.New(t))
	ctx := context.Background()
	updated := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, closedTicket(t, 7, "old", updated)))
	require.NoError(t, repo.Upsert(ctx, closedTicket(t, 7, "new", updated.Add(time.Hour))))

	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Subject())
	assert.Equal(t, updated.Add(time.Hour), got.UpdatedAt())
	assert.Equal(t, "Centro", got.CustomFields()["cf_branch"])
}
