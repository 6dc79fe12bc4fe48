package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/shared/logger"
)

func TestRecorder_CountsSyncEvents(t *testing.T) {
	bus := events.NewBus(logger.NewDiscard(), 8)
	require.NoError(t, NewRecorder().Subscribe(bus))

	importedBefore := testutil.ToFloat64(TicketsImported)
	failuresBefore := testutil.ToFloat64(TicketFailures)
	partialBefore := testutil.ToFloat64(SyncRuns.WithLabelValues("http", "partial"))

	bus.PublishSync(events.New(events.KindTicketSynced, "100", events.TicketSynced{TicketID: 100}))
	bus.PublishSync(events.New(events.KindSyncCompleted, "run", events.SyncFinished{
		Trigger:  "http",
		Status:   "partial",
		Failed:   2,
		Duration: 3 * time.Second,
	}))

	assert.Equal(t, importedBefore+1, testutil.ToFloat64(TicketsImported))
	assert.Equal(t, failuresBefore+2, testutil.ToFloat64(TicketFailures))
	assert.Equal(t, partialBefore+1, testutil.ToFloat64(SyncRuns.WithLabelValues("http", "partial")))
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
