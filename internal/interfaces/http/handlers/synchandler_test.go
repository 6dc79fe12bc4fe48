package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/application/ticketsync"
	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/interfaces/http/handlers/testutil"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

type stubSyncer struct {
	result  *ticketsync.SyncResult
	err     error
	lastCmd ticketsync.SyncClosedTicketsCommand
	calls   int
}

func (s *stubSyncer) Execute(_ context.Context, cmd ticketsync.SyncClosedTicketsCommand) (*ticketsync.SyncResult, error) {
	s.calls++
	s.lastCmd = cmd
	return s.result, s.err
}

type stubRuns struct {
	run    *ticketsync.RunDTO
	err    error
	cursor *ticketsync.CursorDTO
}

func (s *stubRuns) ListRuns(_ context.Context, page query.PageFilter) (*ticketsync.ListRunsResponse, error) {
	return &ticketsync.ListRunsResponse{Page: page.Page, PageSize: page.PageSize}, nil
}

func (s *stubRuns) GetRun(context.Context, string) (*ticketsync.RunDTO, error) {
	return s.run, s.err
}

func (s *stubRuns) GetCursor(context.Context) (*ticketsync.CursorDTO, error) {
	return s.cursor, nil
}

var fixedNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func newSyncHandler(syncer *stubSyncer) *SyncHandler {
	h := NewSyncHandler(syncer, &stubRuns{}, 7*24*time.Hour, testutil.NewMockLogger())
	h.nowFn = func() time.Time { return fixedNow }
	return h
}

func callSync(t *testing.T, h *SyncHandler, since string) (int, testutil.SyncBody, http.Header) {
	t.Helper()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/sync/closed-tickets", nil)
	if since != "" {
		testutil.SetQueryParams(c, map[string]string{"since": since})
	}
	h.SyncClosedTickets(c)

	var body testutil.SyncBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	return w.Code, body, w.Header()
}

func TestSyncClosedTickets_Success(t *testing.T) {
	syncer := &stubSyncer{result: &ticketsync.SyncResult{RunID: "run-1", Imported: 3}}
	h := newSyncHandler(syncer)

	code, body, _ := callSync(t, h, "2026-05-01")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.OK)
	assert.Equal(t, 3, body.Imported)
	assert.Equal(t, "2026-05-01", body.Since)
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, syncrun.TriggerHTTP, syncer.lastCmd.Trigger)
	assert.Equal(t, 2026, syncer.lastCmd.Since.Year())
}

func TestSyncClosedTickets_DefaultSince(t *testing.T) {
	syncer := &stubSyncer{result: &ticketsync.SyncResult{}}
	h := newSyncHandler(syncer)

	code, body, _ := callSync(t, h, "")

	require.Equal(t, http.StatusOK, code)
	want := fixedNow.Add(-7 * 24 * time.Hour)
	assert.Equal(t, want, syncer.lastCmd.Since)
	assert.Equal(t, want.Format(time.RFC3339), body.Since)
}

func TestSyncClosedTickets_Partial(t *testing.T) {
	syncer := &stubSyncer{result: &ticketsync.SyncResult{
		RunID:    "run-2",
		Imported: 1,
		Failures: []syncrun.Failure{{TicketID: 42, Error: "requester has no email"}},
	}}
	h := newSyncHandler(syncer)

	code, body, _ := callSync(t, h, "")

	assert.Equal(t, http.StatusMultiStatus, code)
	assert.False(t, body.OK)
	assert.True(t, body.Partial)
	assert.Equal(t, 1, body.Imported)
	assert.Equal(t, 1, body.Failed)
}

func TestSyncClosedTickets_BadSince(t *testing.T) {
	syncer := &stubSyncer{}
	h := newSyncHandler(syncer)

	code, body, _ := callSync(t, h, "last tuesday")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body.Error)
	assert.Zero(t, syncer.calls)
}

func TestSyncClosedTickets_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantRetry  string
		wantErrMsg string
	}{
		{
			name:       "already running",
			err:        errors.NewSyncInProgressError("a closed-ticket sync is already running"),
			wantCode:   http.StatusConflict,
			wantErrMsg: "a closed-ticket sync is already running",
		},
		{
			name:       "rate limited",
			err:        errors.NewRateLimitedError("freshdesk rate limit reached", 1500*time.Millisecond),
			wantCode:   http.StatusTooManyRequests,
			wantRetry:  "2",
			wantErrMsg: "freshdesk rate limit reached",
		},
		{
			name:     "remote unavailable",
			err:      fmt.Errorf("search page 1: %w", errors.NewRemoteUnavailableError("freshdesk unavailable")),
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "remote rejected",
			err:      errors.NewRemoteRejectedError("freshdesk rejected the request"),
			wantCode: http.StatusBadGateway,
		},
		{
			name:       "plain error does not leak",
			err:        fmt.Errorf("dial tcp 10.0.0.1:3306: connection refused"),
			wantCode:   http.StatusInternalServerError,
			wantErrMsg: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSyncHandler(&stubSyncer{err: tt.err})

			code, body, header := callSync(t, h, "")

			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.OK)
			assert.Equal(t, tt.wantRetry, header.Get("Retry-After"))
			if tt.wantErrMsg != "" {
				assert.Equal(t, tt.wantErrMsg, body.Error)
			}
		})
	}
}

func TestGetRun_NotFound(t *testing.T) {
	h := NewSyncHandler(&stubSyncer{}, &stubRuns{err: errors.NewNotFoundError("sync run not found")}, 0, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/sync/runs/nope", nil)
	testutil.SetURLParam(c, "id", "nope")
	h.GetRun(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCursor(t *testing.T) {
	pos := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	h := NewSyncHandler(&stubSyncer{}, &stubRuns{cursor: &ticketsync.CursorDTO{Name: syncrun.CursorClosedTickets, Position: pos, Saved: true}}, 0, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/sync/cursor", nil)
	h.GetCursor(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), syncrun.CursorClosedTickets)
}
