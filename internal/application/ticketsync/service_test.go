package ticketsync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/infrastructure/lock"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/infrastructure/repository"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/services/markdown"
)

type harness struct {
	db        *gorm.DB
	remote    *fakeRemote
	locker    *lock.LocalLocker
	runs      *repository.SyncRunRepository
	publisher *recordingPublisher
	uc        *SyncClosedTicketsUseCase
}

func newHarness(t *testing.T, remote *fakeRemote, aliases organization.Aliases) *harness {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewDiscard()

	h := &harness{
		db:        gdb,
		remote:    remote,
		locker:    lock.NewLocalLocker(),
		runs:      repository.NewSyncRunRepository(gdb),
		publisher: &recordingPublisher{},
	}
	reconciler := NewReconciler(
		db.NewTransactionManager(gdb),
		repository.NewOrganizationRepository(gdb),
		repository.NewRequesterRepository(gdb),
		repository.NewTicketRepository(gdb),
		aliases,
		markdown.NewRenderer(),
		log,
	)
	fetcher := NewFetcher(remote, FetcherConfig{}, log)
	h.uc = NewSyncClosedTicketsUseCase(fetcher, reconciler, h.runs, h.locker, time.Minute, h.publisher, log)
	return h
}

func (h *harness) sync(t *testing.T) (*SyncResult, error) {
	t.Helper()
	return h.uc.Execute(context.Background(), SyncClosedTicketsCommand{Since: syncSince, Trigger: syncrun.TriggerHTTP})
}

func (h *harness) tickets(t *testing.T) []models.TicketModel {
	t.Helper()
	var rows []models.TicketModel
	require.NoError(t, h.db.Order("id").Find(&rows).Error)
	return rows
}

func (h *harness) organizations(t *testing.T) []models.OrganizationModel {
	t.Helper()
	var rows []models.OrganizationModel
	require.NoError(t, h.db.Order("id").Find(&rows).Error)
	return rows
}

func TestSync_AcmeScenario(t *testing.T) {
	h := newHarness(t, newFakeRemote(closedTicket(100, "Printer jam", "Acme Corp"), closedTicket(101, "Toner", "Acme Corp")), nil)

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, syncrun.StatusSucceeded, result.Status)

	orgs := h.organizations(t)
	require.Len(t, orgs, 1)
	assert.Equal(t, "ACME CORP", orgs[0].Name)

	rows := h.tickets(t)
	require.Len(t, rows, 2)
	for i, id := range []int64{100, 101} {
		assert.Equal(t, id, rows[i].ID)
		require.NotNil(t, rows[i].OrganizationID)
		assert.Equal(t, orgs[0].ID, *rows[i].OrganizationID)
	}

	assert.Equal(t, []string{"status:5 AND updated_at:>'2025-01-01'"}, h.remote.queries)
	assert.Equal(t, []events.Kind{events.KindTicketSynced, events.KindTicketSynced, events.KindSyncCompleted}, h.publisher.kinds())

	run, err := h.runs.GetByID(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, syncrun.StatusSucceeded, run.Status())
	assert.Equal(t, 2, run.Imported())
	assert.NotNil(t, run.FinishedAt())
}

func TestSync_TicketEventsOutlastBusBuffer(t *testing.T) {
	h := newHarness(t, newFakeRemote(manyTickets(40)...), nil)

	bus := events.NewBus(logger.NewDiscard(), 1)
	var synced atomic.Int32
	_, err := bus.Subscribe(events.KindTicketSynced, func(events.Event) error { synced.Add(1); return nil })
	require.NoError(t, err)
	require.NoError(t, bus.Start())
	t.Cleanup(func() { _ = bus.Stop() })
	h.uc.publisher = bus

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.Equal(t, 40, result.Imported)
	assert.EqualValues(t, 40, synced.Load())
}

func TestSync_IsIdempotent(t *testing.T) {
	h := newHarness(t, newFakeRemote(closedTicket(100, "Printer jam", "Acme Corp"), closedTicket(101, "Toner", "Acme Corp")), nil)

	_, err := h.sync(t)
	require.NoError(t, err)
	firstTickets := h.tickets(t)
	firstOrgs := h.organizations(t)

	_, err = h.sync(t)
	require.NoError(t, err)

	assert.Equal(t, firstTickets, h.tickets(t))
	assert.Equal(t, firstOrgs, h.organizations(t))
}

func TestSync_ConvergesToLatestRemoteState(t *testing.T) {
	remote := newFakeRemote(closedTicket(100, "Printer jam", "Acme Corp"))
	h := newHarness(t, remote, nil)

	_, err := h.sync(t)
	require.NoError(t, err)
	before := h.tickets(t)[0]

	changed := closedTicket(100, "Printer jam (resolved onsite)", "Acme Corp")
	changed.UpdatedAt = remoteUpdatedAt.Add(time.Hour)
	remote.put(changed)

	_, err = h.sync(t)
	require.NoError(t, err)

	rows := h.tickets(t)
	require.Len(t, rows, 1)
	after := rows[0]
	assert.Equal(t, "Printer jam (resolved onsite)", after.Subject)
	assert.True(t, after.RemoteUpdatedAt.Equal(changed.UpdatedAt))
	assert.Equal(t, before.OrganizationID, after.OrganizationID)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Type, after.Type)
	assert.True(t, before.RemoteCreatedAt.Equal(after.RemoteCreatedAt))
}

func TestSync_NormalizesOrganizationNames(t *testing.T) {
	h := newHarness(t, newFakeRemote(
		closedTicket(1, "a", "Alianz "),
		closedTicket(2, "b", "ALIANZ"),
		closedTicket(3, "c", " alianz"),
	), nil)

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)

	orgs := h.organizations(t)
	require.Len(t, orgs, 1)
	assert.Equal(t, "ALIANZ", orgs[0].Name)
}

func TestSync_AppliesAliases(t *testing.T) {
	aliases := organization.NewAliases(map[string]string{"Acme Corporation": "Acme Corp"})
	h := newHarness(t, newFakeRemote(
		closedTicket(1, "a", "Acme Corp"),
		closedTicket(2, "b", "acme corporation"),
	), aliases)

	_, err := h.sync(t)
	require.NoError(t, err)

	orgs := h.organizations(t)
	require.Len(t, orgs, 1)
	assert.Equal(t, "ACME CORP", orgs[0].Name)
}

func TestSync_DetailFailureIsPartial(t *testing.T) {
	remote := newFakeRemote(closedTicket(100, "Printer jam", "Acme Corp"), closedTicket(101, "Toner", "Acme Corp"))
	remote.failing[101] = apperrors.NewRemoteUnavailableError("freshdesk returned 503")
	h := newHarness(t, remote, nil)

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, syncrun.StatusPartial, result.Status)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(101), result.Failures[0].TicketID)
	assert.Contains(t, result.Failures[0].Error, "503")
	assert.False(t, result.Failures[0].Permanent)
	assert.True(t, result.Retryable())

	rows := h.tickets(t)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].ID)

	last := h.publisher.last()
	assert.Equal(t, events.KindSyncCompleted, last.Kind)
	payload, ok := last.Payload.(events.SyncFinished)
	require.True(t, ok)
	assert.True(t, payload.Partial())
	assert.Equal(t, "partial", payload.Status)

	run, err := h.runs.GetByID(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, syncrun.StatusPartial, run.Status())
	require.Len(t, run.Failures(), 1)
	assert.Equal(t, int64(101), run.Failures()[0].TicketID)
}

func TestSync_MalformedRecordIsSkipped(t *testing.T) {
	remote := newFakeRemote(closedTicket(100, "ok", "Acme Corp"), closedTicket(101, "nameless", "   "))
	h := newHarness(t, remote, nil)

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(101), result.Failures[0].TicketID)
	assert.Contains(t, result.Failures[0].Error, string(apperrors.ErrorTypeDataContractViolation))
	assert.True(t, result.Failures[0].Permanent)
	assert.False(t, result.Retryable())
	assert.Len(t, h.tickets(t), 1)
}

func TestSync_SearchFailureFailsRun(t *testing.T) {
	remote := newFakeRemote(closedTicket(100, "ok", "Acme Corp"))
	remote.searchErr = apperrors.NewRateLimitedError("freshdesk rate limit", 30*time.Second)
	h := newHarness(t, remote, nil)

	result, err := h.sync(t)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRateLimited))
	require.NotNil(t, result)
	assert.Equal(t, syncrun.StatusFailed, result.Status)

	assert.Equal(t, events.KindSyncFailed, h.publisher.last().Kind)

	run, err := h.runs.GetByID(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, syncrun.StatusFailed, run.Status())
	assert.NotEmpty(t, run.ErrorMessage())
}

func TestSync_RejectsConcurrentRun(t *testing.T) {
	h := newHarness(t, newFakeRemote(), nil)

	lease, ok, err := h.locker.TryAcquire(context.Background(), lockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	result, err := h.sync(t)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSyncInProgress))

	lease.Release()
	_, err = h.sync(t)
	assert.NoError(t, err)
}

// renewingLocker counts lock renewals and can report the lock as lost.
type renewingLocker struct {
	inner   *lock.LocalLocker
	extends atomic.Int32
	lost    bool
}

func (l *renewingLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (*lock.Lease, bool, error) {
	lease, ok, err := l.inner.TryAcquire(ctx, key, ttl)
	if err != nil || !ok {
		return lease, ok, err
	}
	extend := func(ctx context.Context, ttl time.Duration) error {
		l.extends.Add(1)
		if l.lost {
			return lock.ErrLockLost
		}
		return lease.Extend(ctx, ttl)
	}
	return lock.NewLease(extend, lease.Release), true, nil
}

func TestSync_RenewsLockAfterEveryPage(t *testing.T) {
	h := newHarness(t, newFakeRemote(manyTickets(70)...), nil)
	locker := &renewingLocker{inner: h.locker}
	h.uc.locker = locker

	result, err := h.sync(t)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 70, result.Imported)
	assert.EqualValues(t, 3, locker.extends.Load())

	_, ok, _ := h.locker.TryAcquire(context.Background(), lockKey, time.Minute)
	assert.True(t, ok, "lock released after the run")
}

func TestSync_LostLockStopsRun(t *testing.T) {
	h := newHarness(t, newFakeRemote(manyTickets(70)...), nil)
	h.uc.locker = &renewingLocker{inner: h.locker, lost: true}

	result, err := h.sync(t)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSyncInProgress))
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 30, result.Imported)
	assert.Equal(t, syncrun.StatusFailed, result.Status)
}

func TestSync_ResolvesRequesters(t *testing.T) {
	first := closedTicket(100, "a", "Acme Corp")
	first.Requester = &freshdesk.Contact{ID: 77, Name: "Ana Ruiz", Email: "Ana.Ruiz@Acme.mx"}
	second := closedTicket(101, "b", "Acme Corp")
	second.RequesterID = int64Ptr(77)
	h := newHarness(t, newFakeRemote(first, second), nil)

	_, err := h.sync(t)
	require.NoError(t, err)

	var requesters []models.RequesterModel
	require.NoError(t, h.db.Find(&requesters).Error)
	require.Len(t, requesters, 1)
	require.NotNil(t, requesters[0].Email)
	assert.Equal(t, "ana.ruiz@acme.mx", *requesters[0].Email)
	require.NotNil(t, requesters[0].RemoteID)
	assert.Equal(t, int64(77), *requesters[0].RemoteID)

	rows := h.tickets(t)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.NotNil(t, row.RequesterID)
		assert.Equal(t, requesters[0].ID, *row.RequesterID)
	}
	assert.Equal(t, "ana.ruiz@acme.mx", rows[0].RequesterEmail)
}

func TestSync_BackfillsRemoteIDOnEmailMatch(t *testing.T) {
	remote := newFakeRemote()
	h := newHarness(t, remote, nil)

	email := "ops@acme.mx"
	require.NoError(t, h.db.Create(&models.RequesterModel{Name: "Ops", Email: &email}).Error)

	rec := closedTicket(100, "a", "")
	rec.Requester = &freshdesk.Contact{ID: 55, Name: "Ops desk", Email: "OPS@acme.mx"}
	remote.put(rec)

	_, err := h.sync(t)
	require.NoError(t, err)

	var stored models.RequesterModel
	require.NoError(t, h.db.Where("email = ?", email).First(&stored).Error)
	require.NotNil(t, stored.RemoteID)
	assert.Equal(t, int64(55), *stored.RemoteID)
	assert.Equal(t, "Ops", stored.Name)
	assert.Nil(t, h.tickets(t)[0].OrganizationID)
}

func TestSync_KeepsEmailMatchWhenRemoteIDIsTaken(t *testing.T) {
	remote := newFakeRemote()
	h := newHarness(t, remote, nil)

	email := "ana@example.com"
	owned := int64(7)
	byEmail := models.RequesterModel{Name: "Ana", Email: &email}
	stub := models.RequesterModel{Name: "Freshdesk contact 7", RemoteID: &owned}
	require.NoError(t, h.db.Create(&byEmail).Error)
	require.NoError(t, h.db.Create(&stub).Error)

	rec := closedTicket(200, "a", "")
	rec.Requester = &freshdesk.Contact{ID: 7, Name: "Ana", Email: "ana@example.com"}
	remote.put(rec)

	for run := 0; run < 2; run++ {
		result, err := h.sync(t)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, result.Failures)
	}

	var stored models.RequesterModel
	require.NoError(t, h.db.First(&stored, byEmail.ID).Error)
	assert.Nil(t, stored.RemoteID)

	rows := h.tickets(t)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].RequesterID)
	assert.Equal(t, byEmail.ID, *rows[0].RequesterID)
}

func TestSync_SanitizesDescriptions(t *testing.T) {
	rec := closedTicket(100, "a", "Acme Corp")
	rec.Description = `<p onclick="x()">Hello<script>alert(1)</script></p>`
	h := newHarness(t, newFakeRemote(rec), nil)

	_, err := h.sync(t)
	require.NoError(t, err)

	desc := h.tickets(t)[0].Description
	assert.Contains(t, desc, "Hello")
	assert.NotContains(t, desc, "script")
	assert.NotContains(t, desc, "onclick")
}

func int64Ptr(v int64) *int64 { return &v }
