package ticketsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/infrastructure/repository"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type stubSyncer struct {
	calls  []SyncClosedTicketsCommand
	result *SyncResult
	err    error
}

func (s *stubSyncer) Execute(_ context.Context, cmd SyncClosedTicketsCommand) (*SyncResult, error) {
	s.calls = append(s.calls, cmd)
	if s.result != nil {
		s.result.Since = cmd.Since
	}
	return s.result, s.err
}

var cursorNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newCursorSync(t *testing.T, syncer *stubSyncer) (*CursorSync, *repository.SyncRunRepository) {
	t.Helper()
	runs := repository.NewSyncRunRepository(testdb.New(t))
	c := NewCursorSync(syncer, runs, time.Hour, 7*24*time.Hour, logger.NewDiscard())
	c.nowFn = func() time.Time { return cursorNow }
	return c, runs
}

func TestCursorSync_FirstRunUsesLookbackAndAdvances(t *testing.T) {
	syncer := &stubSyncer{result: &SyncResult{RunID: "r1", StartedAt: cursorNow.Add(-time.Minute)}}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	require.NoError(t, c.Run(ctx))

	require.Len(t, syncer.calls, 1)
	assert.Equal(t, cursorNow.Add(-7*24*time.Hour), syncer.calls[0].Since)
	assert.Equal(t, syncrun.TriggerScheduler, syncer.calls[0].Trigger)

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.True(t, cursor.Position.Equal(cursorNow.Add(-time.Minute-time.Hour)))

	next, err := c.Since(ctx)
	require.NoError(t, err)
	assert.True(t, next.Equal(cursor.Position))
}

func TestCursorSync_PartialRunKeepsCursor(t *testing.T) {
	syncer := &stubSyncer{result: &SyncResult{
		RunID:     "r1",
		StartedAt: cursorNow,
		Failures:  []syncrun.Failure{{TicketID: 101, Error: "boom"}},
	}}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	start := cursorNow.Add(-48 * time.Hour)
	require.NoError(t, runs.SaveCursor(ctx, &syncrun.Cursor{Name: syncrun.CursorClosedTickets, Position: start, UpdatedAt: start}))

	require.NoError(t, c.Run(ctx))

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.True(t, cursor.Position.Equal(start))
	assert.True(t, syncer.calls[0].Since.Equal(start))
}

func TestCursorSync_AdvancesPastPermanentFailures(t *testing.T) {
	syncer := &stubSyncer{result: &SyncResult{
		RunID:     "r1",
		StartedAt: cursorNow,
		Failures:  []syncrun.Failure{{TicketID: 300, Error: "company has no name", Permanent: true}},
	}}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	start := cursorNow.Add(-48 * time.Hour)
	require.NoError(t, runs.SaveCursor(ctx, &syncrun.Cursor{Name: syncrun.CursorClosedTickets, Position: start, UpdatedAt: start}))

	require.NoError(t, c.Run(ctx))

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.True(t, cursor.Position.Equal(cursorNow.Add(-time.Hour)))
}

func TestCursorSync_MalformedRecordDoesNotFreezeCursor(t *testing.T) {
	broken := closedTicket(300, "no company name", "   ")
	h := newHarness(t, newFakeRemote(closedTicket(299, "ok", "Acme Corp"), broken), nil)
	c := NewCursorSync(h.uc, h.runs, time.Hour, 7*24*time.Hour, logger.NewDiscard())
	ctx := context.Background()

	require.NoError(t, c.Run(ctx))

	cursor, err := h.runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	require.NotNil(t, cursor)

	runs, _, err := h.runs.List(ctx, query.PageFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Failures(), 1)
	assert.Equal(t, int64(300), runs[0].Failures()[0].TicketID)
	assert.True(t, runs[0].Failures()[0].Permanent)
	assert.Equal(t, 1, runs[0].Imported())
}

func TestCursorSync_NeverMovesBackwards(t *testing.T) {
	syncer := &stubSyncer{result: &SyncResult{RunID: "r1", StartedAt: cursorNow}}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	start := cursorNow.Add(-10 * time.Minute)
	require.NoError(t, runs.SaveCursor(ctx, &syncrun.Cursor{Name: syncrun.CursorClosedTickets, Position: start, UpdatedAt: start}))

	require.NoError(t, c.Run(ctx))

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.True(t, cursor.Position.Equal(start))
}

func TestCursorSync_SkipsWhenLocked(t *testing.T) {
	syncer := &stubSyncer{err: apperrors.NewSyncInProgressError("busy")}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	require.NoError(t, c.Run(ctx))

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestCursorSync_FailedRunReturnsError(t *testing.T) {
	boom := errors.New("search failed")
	syncer := &stubSyncer{result: &SyncResult{RunID: "r1"}, err: boom}
	c, runs := newCursorSync(t, syncer)
	ctx := context.Background()

	assert.ErrorIs(t, c.Run(ctx), boom)

	cursor, err := runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	require.NoError(t, err)
	assert.Nil(t, cursor)
}
