package events

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/shared/logger"
)

func TestBus_PublishSyncDeliversByKind(t *testing.T) {
	bus := NewBus(logger.NewDiscard(), 4)

	var completed, failed int
	_, err := bus.Subscribe(KindSyncCompleted, func(Event) error { completed++; return nil })
	require.NoError(t, err)
	_, err = bus.Subscribe(KindSyncFailed, func(Event) error { failed++; return nil })
	require.NoError(t, err)

	bus.PublishSync(New(KindSyncCompleted, "run-1", SyncFinished{RunID: "run-1"}))

	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, failed)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(logger.NewDiscard(), 4)

	var calls int
	id, err := bus.Subscribe(KindTicketSynced, func(Event) error { calls++; return nil })
	require.NoError(t, err)

	bus.PublishSync(New(KindTicketSynced, "1", TicketSynced{TicketID: 1}))
	bus.Unsubscribe(id)
	bus.PublishSync(New(KindTicketSynced, "2", TicketSynced{TicketID: 2}))

	assert.Equal(t, 1, calls)
}

func TestBus_HandlerErrorsAndPanicsAreContained(t *testing.T) {
	bus := NewBus(logger.NewDiscard(), 4)

	var reached bool
	_, _ = bus.Subscribe(KindSyncFailed, func(Event) error { panic("boom") })
	_, _ = bus.Subscribe(KindSyncFailed, func(Event) error { return errors.New("smtp down") })
	_, _ = bus.Subscribe(KindSyncFailed, func(Event) error { reached = true; return nil })

	assert.NotPanics(t, func() {
		bus.PublishSync(New(KindSyncFailed, "run", SyncFinished{}))
	})
	assert.True(t, reached)
}

func TestBus_AsyncPublishDrainsOnStop(t *testing.T) {
	bus := NewBus(logger.NewDiscard(), 16)

	var count atomic.Int32
	_, _ = bus.Subscribe(KindTicketSynced, func(Event) error { count.Add(1); return nil })

	assert.Error(t, bus.Publish(New(KindTicketSynced, "x", nil)), "publish before start")

	require.NoError(t, bus.Start())
	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(New(KindTicketSynced, "x", nil)))
	}
	require.NoError(t, bus.Stop())

	assert.Eventually(t, func() bool { return count.Load() == 10 }, time.Second, 10*time.Millisecond)
}

func TestBus_SubscribeValidation(t *testing.T) {
	bus := NewBus(logger.NewDiscard(), 1)
	_, err := bus.Subscribe("", func(Event) error { return nil })
	assert.Error(t, err)
	_, err = bus.Subscribe(KindSyncFailed, nil)
	assert.Error(t, err)
}
