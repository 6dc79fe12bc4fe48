package ticketsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/shared/biztime"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

var syncSince = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func manyTickets(n int) []*freshdesk.Ticket {
	out := make([]*freshdesk.Ticket, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, closedTicket(int64(i), "ticket", ""))
	}
	return out
}

func collect(t *testing.T, f *Fetcher) ([][]DetailResult, int, error) {
	t.Helper()
	var seen [][]DetailResult
	pages, err := f.FetchClosedSince(context.Background(), syncSince, func(_ context.Context, _ int, results []DetailResult) error {
		seen = append(seen, results)
		return nil
	})
	return seen, pages, err
}

func TestClosedSinceQuery(t *testing.T) {
	assert.Equal(t, "status:5 AND updated_at:>'2025-01-01'", ClosedSinceQuery(syncSince))
}

func TestClosedSinceQuery_UsesUTCDateEastOfUTC(t *testing.T) {
	require.NoError(t, biztime.Init("Asia/Tokyo"))
	t.Cleanup(func() { _ = biztime.Init("UTC") })

	// 20:00 UTC is already Jan 2 in Tokyo; the filter must still start on Jan 1
	since := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "status:5 AND updated_at:>'2025-01-01'", ClosedSinceQuery(since))
}

func TestFetcher_EmptyResultStopsAfterOnePage(t *testing.T) {
	remote := newFakeRemote()
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())

	seen, pages, err := collect(t, f)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Empty(t, seen)
	assert.Equal(t, []int{1}, remote.searched)
}

func TestFetcher_PaginatesByTotal(t *testing.T) {
	remote := newFakeRemote(manyTickets(45)...)
	f := NewFetcher(remote, FetcherConfig{PerPage: 30}, logger.NewDiscard())

	seen, pages, err := collect(t, f)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Equal(t, []int{1, 2}, remote.searched)
	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 30)
	assert.Len(t, seen[1], 15)
}

func TestFetcher_StopsAtMaxPages(t *testing.T) {
	remote := newFakeRemote(manyTickets(12)...)
	remote.perPage = 2
	f := NewFetcher(remote, FetcherConfig{PerPage: 2, MaxPages: 3}, logger.NewDiscard())

	_, pages, err := collect(t, f)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestFetcher_StopsOnEmptyPageEvenWhenTotalIsHigher(t *testing.T) {
	remote := newFakeRemote(manyTickets(5)...)
	remote.total = 500
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())

	seen, pages, err := collect(t, f)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Len(t, seen, 1)
}

func TestFetcher_BoundsConcurrentDetailFetches(t *testing.T) {
	remote := newFakeRemote(manyTickets(60)...)
	remote.delay = 20 * time.Millisecond
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())

	seen, _, err := collect(t, f)
	require.NoError(t, err)
	require.Len(t, seen, 2)

	assert.LessOrEqual(t, remote.maxInFlight.Load(), int32(DefaultDetailConcurrency))
	assert.Greater(t, remote.maxInFlight.Load(), int32(1))
}

func TestFetcher_DetailFailureStaysInItsSlot(t *testing.T) {
	remote := newFakeRemote(closedTicket(100, "a", "Acme"), closedTicket(101, "b", "Acme"), closedTicket(102, "c", "Acme"))
	remote.failing[101] = apperrors.NewRemoteUnavailableError("boom")
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())

	seen, _, err := collect(t, f)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	page := seen[0]

	require.Len(t, page, 3)
	assert.Equal(t, int64(100), page[0].Ticket.ID)
	assert.Nil(t, page[1].Ticket)
	assert.Equal(t, int64(101), page[1].TicketID)
	assert.True(t, apperrors.IsType(page[1].Err, apperrors.ErrorTypeRemoteUnavailable))
	assert.Equal(t, int64(102), page[2].Ticket.ID)
}

func TestFetcher_SearchFailureIsFatal(t *testing.T) {
	remote := newFakeRemote(manyTickets(3)...)
	remote.searchErr = apperrors.NewRemoteRejectedError("bad query")
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())

	seen, pages, err := collect(t, f)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteRejected))
	assert.Equal(t, 1, pages)
	assert.Empty(t, seen)
}

func TestFetcher_HandlerErrorStopsWalk(t *testing.T) {
	remote := newFakeRemote(manyTickets(45)...)
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())
	stop := errors.New("stop")

	pages, err := f.FetchClosedSince(context.Background(), syncSince, func(context.Context, int, []DetailResult) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, pages)
}

func TestFetcher_HonoursCancelledContext(t *testing.T) {
	remote := newFakeRemote(manyTickets(3)...)
	f := NewFetcher(remote, FetcherConfig{}, logger.NewDiscard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := f.FetchClosedSince(ctx, syncSince, func(context.Context, int, []DetailResult) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pages)
	assert.Empty(t, remote.searched)
}
