// Package events is the in-process bus that carries sync outcomes to subscribers.
package events

import "time"

type Kind string

const (
	KindTicketSynced  Kind = "ticket.synced"
	KindSyncCompleted Kind = "sync.completed"
	KindSyncFailed    Kind = "sync.failed"
)

type Event struct {
	Kind        Kind
	AggregateID string
	OccurredAt  time.Time
	Payload     any
}

// TicketSynced is the payload of KindTicketSynced.
type TicketSynced struct {
	RunID          string
	TicketID       int64
	OrganizationID *uint
}

// SyncFinished is the payload of KindSyncCompleted and KindSyncFailed.
type SyncFinished struct {
	RunID    string
	Trigger  string
	Status   string
	Since    time.Time
	Imported int
	Failed   int
	Pages    int
	Failures []FailedTicket
	Error    string
	Duration time.Duration
}

type FailedTicket struct {
	TicketID int64
	Error    string
}

// Partial reports whether a completed run left some tickets behind.
func (p SyncFinished) Partial() bool {
	return p.Failed > 0
}

func New(kind Kind, aggregateID string, payload any) Event {
	return Event{
		Kind:        kind,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

type Handler func(Event) error

// Publisher is the narrow side of the bus handed to use cases. PublishSync
// is for high-volume events that must not be dropped by a full buffer.
type Publisher interface {
	Publish(event Event) error
	PublishSync(event Event)
}
