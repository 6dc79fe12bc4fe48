package ticketsync

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/infrastructure/freshdesk"
	apperrors "crmdesk/internal/shared/errors"
)

// fakeRemote serves a fixed set of tickets, perPage at a time.
type fakeRemote struct {
	mu       sync.Mutex
	tickets  map[int64]*freshdesk.Ticket
	failing  map[int64]error
	perPage  int
	total    int // overrides the reported total when > 0
	delay    time.Duration
	queries  []string
	searched []int

	searchErr error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeRemote(tickets ...*freshdesk.Ticket) *fakeRemote {
	r := &fakeRemote{
		tickets: map[int64]*freshdesk.Ticket{},
		failing: map[int64]error{},
		perPage: DefaultPerPage,
	}
	for _, t := range tickets {
		r.tickets[t.ID] = t
	}
	return r
}

func (r *fakeRemote) put(t *freshdesk.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
}

func (r *fakeRemote) ids() []int64 {
	ids := make([]int64, 0, len(r.tickets))
	for id := range r.tickets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *fakeRemote) SearchTickets(_ context.Context, query string, page int) (*freshdesk.SearchPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	r.searched = append(r.searched, page)
	if r.searchErr != nil {
		return nil, r.searchErr
	}

	ids := r.ids()
	total := len(ids)
	if r.total > 0 {
		total = r.total
	}
	out := &freshdesk.SearchPage{Total: total}
	start := (page - 1) * r.perPage
	for i := start; i < len(ids) && i < start+r.perPage; i++ {
		out.Results = append(out.Results, freshdesk.TicketStub{ID: ids[i], UpdatedAt: r.tickets[ids[i]].UpdatedAt})
	}
	return out, nil
}

func (r *fakeRemote) GetTicket(ctx context.Context, id int64) (*freshdesk.Ticket, error) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		seen := r.maxInFlight.Load()
		if n <= seen || r.maxInFlight.CompareAndSwap(seen, n) {
			break
		}
	}

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failing[id]; ok {
		return nil, err
	}
	t, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.NewRemoteRejectedError("ticket not found")
	}
	cp := *t
	return &cp, nil
}

var remoteUpdatedAt = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func closedTicket(id int64, subject, company string) *freshdesk.Ticket {
	t := &freshdesk.Ticket{
		ID:          id,
		Subject:     subject,
		Status:      5,
		Priority:    1,
		Source:      2,
		Type:        "Incident",
		Description: "<p>printer offline</p>",
		CreatedAt:   remoteUpdatedAt.Add(-48 * time.Hour),
		UpdatedAt:   remoteUpdatedAt,
	}
	if company != "" {
		t.Company = &freshdesk.Company{ID: 9000 + id, Name: company}
	}
	return t
}

// recordingPublisher keeps every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) PublishSync(e events.Event) {
	_ = p.Publish(e)
}

func (p *recordingPublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Kind, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}
