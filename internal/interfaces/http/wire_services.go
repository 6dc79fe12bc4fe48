package http

import (
	"context"
	"fmt"

	branchApp "crmdesk/internal/application/branch"
	equipmentApp "crmdesk/internal/application/equipment"
	organizationApp "crmdesk/internal/application/organization"
	quoteApp "crmdesk/internal/application/quote"
	requesterApp "crmdesk/internal/application/requester"
	ticketApp "crmdesk/internal/application/ticket"
	"crmdesk/internal/application/ticketsync"
	visitApp "crmdesk/internal/application/visit"
	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/infrastructure/credentials"
	"crmdesk/internal/infrastructure/email"
	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/infrastructure/lock"
	"crmdesk/internal/infrastructure/metrics"
	"crmdesk/internal/infrastructure/orgalias"
	"crmdesk/internal/infrastructure/scheduler"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/services/markdown"
)

const eventBufferSize = 256

// closedTicketsSyncer is satisfied by the sync use case, or by
// unconfiguredSyncer when no Freshdesk key could be resolved.
type closedTicketsSyncer interface {
	Execute(ctx context.Context, cmd ticketsync.SyncClosedTicketsCommand) (*ticketsync.SyncResult, error)
}

// allServices holds the application services handed to the handlers.
type allServices struct {
	organization *organizationApp.Service
	branch       *branchApp.Service
	requester    *requesterApp.Service
	equipment    *equipmentApp.Service
	quote        *quoteApp.Service
	visit        *visitApp.Service
	ticket       *ticketApp.Service

	syncRuns   *ticketsync.RunsService
	syncer     closedTicketsSyncer
	cursorSync *ticketsync.CursorSync
}

// unconfiguredSyncer answers every sync request with the reason the
// Freshdesk client could not be built.
type unconfiguredSyncer struct {
	reason string
}

func (s unconfiguredSyncer) Execute(context.Context, ticketsync.SyncClosedTicketsCommand) (*ticketsync.SyncResult, error) {
	return nil, apperrors.NewInternalError("freshdesk sync is not configured", s.reason)
}

func (c *Container) initServices() {
	r := c.repos
	renderer := markdown.NewRenderer()

	c.svcs = &allServices{
		organization: organizationApp.NewService(r.organizationRepo, c.log),
		branch:       branchApp.NewService(r.branchRepo, r.organizationRepo, c.log),
		requester:    requesterApp.NewService(r.requesterRepo, r.organizationRepo, c.log),
		equipment:    equipmentApp.NewService(r.equipmentRepo, r.organizationRepo, r.branchRepo, c.log),
		quote:        quoteApp.NewService(r.quoteRepo, r.organizationRepo, r.requesterRepo, c.log),
		visit:        visitApp.NewService(r.visitRepo, r.organizationRepo, r.branchRepo, r.ticketRepo, renderer, c.log),
		ticket:       ticketApp.NewService(r.ticketRepo, c.log),
		syncRuns:     ticketsync.NewRunsService(r.syncRunRepo, c.cfg.Sync.DefaultLookback(), c.log),
	}
}

// initEventBus attaches the metrics recorder and, when enabled, the failure
// mailer. Subscribers must be registered before the bus starts.
func (c *Container) initEventBus() error {
	c.bus = events.NewBus(c.log, eventBufferSize)

	if err := metrics.NewRecorder().Subscribe(c.bus); err != nil {
		return fmt.Errorf("failed to subscribe metrics recorder: %w", err)
	}

	notification := c.cfg.Notification
	if notification.Enabled && len(notification.Recipients) > 0 {
		notifier := email.NewSyncNotifier(email.NewSMTPSender(&notification), notification.Recipients, c.log)
		if err := notifier.Subscribe(c.bus); err != nil {
			return fmt.Errorf("failed to subscribe sync notifier: %w", err)
		}
		c.log.Infow("sync failure mail enabled", "recipients", len(notification.Recipients))
	}

	return c.bus.Start()
}

// initSync builds the Freshdesk pipeline. A missing API key is not fatal:
// the CRUD API still serves and the sync endpoint reports the problem.
func (c *Container) initSync() error {
	apiKey, source := credentials.ResolveFreshdeskKey(c.cfg.Freshdesk.APIKey)
	client, err := freshdesk.NewClient(&c.cfg.Freshdesk, apiKey, c.log)
	if err != nil {
		c.log.Warnw("freshdesk sync disabled", "error", err, "key_source", string(source))
		c.svcs.syncer = unconfiguredSyncer{reason: err.Error()}
		return nil
	}
	c.log.Infow("freshdesk client ready", "base_url", c.cfg.Freshdesk.GetBaseURL(), "key_source", string(source))

	aliases, err := orgalias.Load(c.cfg.Sync.AliasFile)
	if err != nil {
		return err
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if c.redis != nil {
		locker = lock.NewRedisLocker(c.redis)
	}

	r := c.repos
	fetcher := ticketsync.NewFetcher(client, ticketsync.FetcherConfig{
		PerPage:           c.cfg.Freshdesk.PerPage,
		MaxPages:          c.cfg.Freshdesk.MaxPages,
		DetailConcurrency: c.cfg.Freshdesk.DetailConcurrency,
	}, c.log)
	reconciler := ticketsync.NewReconciler(
		db.NewTransactionManager(c.db),
		r.organizationRepo,
		r.requesterRepo,
		r.ticketRepo,
		aliases,
		markdown.NewRenderer(),
		c.log,
	)
	useCase := ticketsync.NewSyncClosedTicketsUseCase(fetcher, reconciler, r.syncRunRepo, locker, c.cfg.Sync.LockTTL(), c.bus, c.log)

	c.svcs.syncer = useCase
	c.svcs.cursorSync = ticketsync.NewCursorSync(useCase, r.syncRunRepo, c.cfg.Sync.Overlap(), c.cfg.Sync.DefaultLookback(), c.log)
	return nil
}

// initScheduler registers the periodic sync. It is skipped when sync is
// disabled in config or the pipeline could not be built.
func (c *Container) initScheduler() error {
	if !c.cfg.Sync.Enabled {
		return nil
	}
	if c.svcs.cursorSync == nil {
		c.log.Warnw("scheduled sync requested but freshdesk is not configured")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterClosedTicketSync(c.svcs.cursorSync, c.cfg.Sync.Interval(), c.cfg.Sync.Interval()); err != nil {
		return fmt.Errorf("failed to register sync job: %w", err)
	}
	c.schedulerManager = manager
	return nil
}
