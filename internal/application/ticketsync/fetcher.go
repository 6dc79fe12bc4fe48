// Package ticketsync mirrors closed Freshdesk tickets into local storage.
// The Fetcher walks the search results page by page and hydrates every stub;
// the Reconciler writes each hydrated record; SyncClosedTicketsUseCase ties
// them together with a run record, a lock and events.
package ticketsync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/infrastructure/metrics"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/logger"
)

const (
	DefaultPerPage           = 30
	DefaultMaxPages          = 10
	DefaultDetailConcurrency = 10
)

// RemoteTickets is the slice of the Freshdesk API the fetcher consumes.
type RemoteTickets interface {
	SearchTickets(ctx context.Context, query string, page int) (*freshdesk.SearchPage, error)
	GetTicket(ctx context.Context, id int64) (*freshdesk.Ticket, error)
}

// DetailResult is the outcome of hydrating one stub: exactly one of Ticket and Err is set.
type DetailResult struct {
	TicketID int64
	Ticket   *freshdesk.Ticket
	Err      error
}

// PageHandler receives each hydrated page, in page order, before the next
// page is requested. Returning an error stops the walk.
type PageHandler func(ctx context.Context, page int, results []DetailResult) error

type FetcherConfig struct {
	PerPage           int
	MaxPages          int
	DetailConcurrency int
}

type Fetcher struct {
	remote   RemoteTickets
	perPage  int
	maxPages int
	sem      *semaphore.Weighted
	log      logger.Interface
}

// NewFetcher shares one semaphore across every page of every run made with
// this fetcher, so DetailConcurrency bounds all outstanding detail requests.
func NewFetcher(remote RemoteTickets, cfg FetcherConfig, log logger.Interface) *Fetcher {
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = DefaultDetailConcurrency
	}
	return &Fetcher{
		remote:   remote,
		perPage:  cfg.PerPage,
		maxPages: cfg.MaxPages,
		sem:      semaphore.NewWeighted(int64(cfg.DetailConcurrency)),
		log:      log.Named("fetcher"),
	}
}

// ClosedSinceQuery is the search filter for closed tickets updated on or
// after the UTC day containing since. Freshdesk compares updated_at dates in
// UTC, so a business-day date east of UTC would skip the hours before midnight.
func ClosedSinceQuery(since time.Time) string {
	return fmt.Sprintf("status:5 AND updated_at:>'%s'", since.UTC().Format(biztime.DateLayout))
}

// FetchClosedSince walks the search results for tickets closed since the
// given bound and returns the number of search pages requested. A failed
// search page ends the walk with an error; a failed detail fetch is reported
// inside that page's results.
func (f *Fetcher) FetchClosedSince(ctx context.Context, since time.Time, handle PageHandler) (int, error) {
	query := ClosedSinceQuery(since)
	pages := 0

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		result, err := f.remote.SearchTickets(ctx, query, page)
		pages++
		if err != nil {
			return pages, fmt.Errorf("failed to search tickets page %d: %w", page, err)
		}

		f.log.Debugw("search page fetched", "page", page, "stubs", len(result.Results), "total", result.Total)

		if len(result.Results) == 0 {
			return pages, nil
		}

		details := f.hydrate(ctx, result.Results)
		if err := handle(ctx, page, details); err != nil {
			return pages, err
		}

		if page*f.perPage >= result.Total {
			return pages, nil
		}
		if page >= f.maxPages {
			f.log.Warnw("search page cap reached, remaining tickets need a narrower window",
				"max_pages", f.maxPages,
				"total", result.Total,
				"since", since,
			)
			return pages, nil
		}
	}
}

// hydrate fetches every stub's detail concurrently and returns the results in stub order.
func (f *Fetcher) hydrate(ctx context.Context, stubs []freshdesk.TicketStub) []DetailResult {
	results := make([]DetailResult, len(stubs))

	var g errgroup.Group
	for i, stub := range stubs {
		results[i].TicketID = stub.ID
		if err := f.sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			defer f.sem.Release(1)
			metrics.DetailFetchesInFlight.Inc()
			defer metrics.DetailFetchesInFlight.Dec()

			t, err := f.remote.GetTicket(ctx, stub.ID)
			if err != nil {
				f.log.Warnw("ticket detail fetch failed", "ticket_id", stub.ID, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Ticket = t
			return nil
		})
	}
	_ = g.Wait()

	return results
}
