package metrics

import (
	"crmdesk/internal/domain/shared/events"
)

// Recorder turns sync events into counter updates.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Subscribe attaches the recorder to the bus for every sync event kind.
func (r *Recorder) Subscribe(bus *events.Bus) error {
	if _, err := bus.Subscribe(events.KindTicketSynced, r.onTicketSynced); err != nil {
		return err
	}
	if _, err := bus.Subscribe(events.KindSyncCompleted, r.onSyncFinished); err != nil {
		return err
	}
	_, err := bus.Subscribe(events.KindSyncFailed, r.onSyncFinished)
	return err
}

func (r *Recorder) onTicketSynced(events.Event) error {
	TicketsImported.Inc()
	return nil
}

func (r *Recorder) onSyncFinished(e events.Event) error {
	p, ok := e.Payload.(events.SyncFinished)
	if !ok {
		return nil
	}
	SyncRuns.WithLabelValues(p.Trigger, p.Status).Inc()
	SyncDuration.WithLabelValues(p.Trigger).Observe(p.Duration.Seconds())
	TicketFailures.Add(float64(p.Failed))
	return nil
}
