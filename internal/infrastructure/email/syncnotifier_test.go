package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/shared/config"
	"crmdesk/internal/shared/logger"
)

type captureDialer struct {
	sent []*gomail.Message
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return nil
}

func newNotifier(t *testing.T) (*events.Bus, *captureDialer) {
	t.Helper()
	dialer := &captureDialer{}
	sender := NewSMTPSenderWithDialer(&config.NotificationConfig{FromAddress: "noreply@crmdesk.local", FromName: "CRM Desk"}, dialer)
	bus := events.NewBus(logger.NewDiscard(), 4)
	require.NoError(t, NewSyncNotifier(sender, []string{"ops@acme.mx"}, logger.NewDiscard()).Subscribe(bus))
	return bus, dialer
}

func TestSyncNotifier_MailsFailedAndPartialRuns(t *testing.T) {
	bus, dialer := newNotifier(t)

	bus.PublishSync(events.New(events.KindSyncFailed, "run-1", events.SyncFinished{
		RunID: "0123456789ab", Status: "failed", Error: "remote_unavailable: freshdesk unavailable",
	}))
	bus.PublishSync(events.New(events.KindSyncCompleted, "run-2", events.SyncFinished{
		RunID: "run-2", Status: "partial", Imported: 1, Failed: 1,
		Failures: []events.FailedTicket{{TicketID: 101, Error: "<script>"}},
	}))

	require.Len(t, dialer.sent, 2)
	assert.Equal(t, []string{"[crmdesk] sync run 01234567: failed"}, dialer.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"ops@acme.mx"}, dialer.sent[1].GetHeader("To"))
}

func TestSyncNotifier_IgnoresCleanRuns(t *testing.T) {
	bus, dialer := newNotifier(t)

	bus.PublishSync(events.New(events.KindSyncCompleted, "run", events.SyncFinished{RunID: "run", Status: "succeeded", Imported: 5}))

	assert.Empty(t, dialer.sent)
}

func TestRenderBodies_EscapesAndTruncates(t *testing.T) {
	failures := make([]events.FailedTicket, maxListedFailures+3)
	for i := range failures {
		failures[i] = events.FailedTicket{TicketID: int64(i), Error: "<b>x</b>"}
	}

	plain, html, err := renderBodies(events.SyncFinished{Status: "partial", Failed: len(failures), Failures: failures})
	require.NoError(t, err)
	assert.Contains(t, plain, "and 3 more")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, html, "<b>x</b>")
}
