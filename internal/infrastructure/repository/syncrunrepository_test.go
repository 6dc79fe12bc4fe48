package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/shared/query"
)

func TestSyncRunRepository_Lifecycle(t *testing.T) {
	repo := NewSyncRunRepository(testdb.New(t))
	ctx := context.Background()

	run := syncrun.NewRun(syncrun.TriggerHTTP, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, run))

	run.Finish(3, 1, []syncrun.Failure{{TicketID: 102, Error: "remote unavailable"}}, nil)
	require.NoError(t, repo.Update(ctx, run))

	got, err := repo.GetByID(ctx, run.ID())
	require.NoError(t, err)
	assert.Equal(t, syncrun.StatusPartial, got.Status())
	assert.Equal(t, 3, got.Imported())
	require.Len(t, got.Failures(), 1)
	assert.EqualValues(t, 102, got.Failures()[0].TicketID)

	runs, total, err := repo.List(ctx, query.PageFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, runs, 1)
}

func TestSyncRunRepository_Cursor(t *testing.T) {
	repo := NewSyncRunRepository(testdb.New(t))
	ctx := context.Background()

	c, err := repo.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.Nil(t, c)

	pos := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveCursor(ctx, &syncrun.Cursor{Name: syncrun.CursorClosedTickets, Position: pos}))
	require.NoError(t, repo.SaveCursor(ctx, &syncrun.Cursor{Name: syncrun.CursorClosedTickets, Position: pos.Add(time.Hour)}))

	c, err = repo.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, pos.Add(time.Hour), c.Position)
}
