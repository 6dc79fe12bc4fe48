package events

import (
	"fmt"
	"sync"

	"crmdesk/internal/shared/goroutine"
	"crmdesk/internal/shared/logger"
)

type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus dispatches events through a buffered channel drained by one worker.
type Bus struct {
	log      logger.Interface
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	nextID   SubscriptionID
	running  bool
	eventCh  chan Event
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewBus(log logger.Interface, bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Bus{
		log:      log.Named("events"),
		handlers: make(map[Kind][]subscription),
		eventCh:  make(chan Event, bufferSize),
		stopCh:   make(chan struct{}),
	}
}

func (b *Bus) Subscribe(kind Kind, handler Handler) (SubscriptionID, error) {
	if kind == "" {
		return 0, fmt.Errorf("event kind cannot be empty")
	}
	if handler == nil {
		return 0, fmt.Errorf("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, handler: handler})
	return id, nil
}

// Unsubscribe removes the handler; unknown ids are ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind, subs := range b.handlers {
		kept := subs[:0:0]
		for _, s := range subs {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(b.handlers, kind)
		} else {
			b.handlers[kind] = kept
		}
	}
}

func (b *Bus) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return fmt.Errorf("event bus is already running")
	}
	b.running = true
	b.wg.Add(1)

	goroutine.SafeGo(b.log, "event-bus", func() {
		defer b.wg.Done()
		b.loop()
	})
	return nil
}

// Stop drains queued events and waits for the worker to exit.
func (b *Bus) Stop() error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return fmt.Errorf("event bus is not running")
	}
	b.running = false
	b.mu.Unlock()

	close(b.stopCh)
	b.wg.Wait()
	return nil
}

// Publish queues the event for the worker. It never blocks; a full buffer drops the event.
func (b *Bus) Publish(event Event) error {
	b.mu.RLock()
	running := b.running
	b.mu.RUnlock()
	if !running {
		return fmt.Errorf("event bus is not running")
	}

	select {
	case b.eventCh <- event:
		return nil
	default:
		b.log.Warnw("event buffer full, dropping event", "kind", event.Kind, "aggregate_id", event.AggregateID)
		return fmt.Errorf("event buffer is full")
	}
}

// PublishSync delivers the event on the caller's goroutine.
func (b *Bus) PublishSync(event Event) {
	b.dispatch(event)
}

func (b *Bus) loop() {
	for {
		select {
		case <-b.stopCh:
			for {
				select {
				case event := <-b.eventCh:
					b.dispatch(event)
				default:
					return
				}
			}
		case event := <-b.eventCh:
			b.dispatch(event)
		}
	}
}

func (b *Bus) dispatch(event Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[event.Kind]...)
	b.mu.RUnlock()

	for _, s := range subs {
		handler := s.handler
		goroutine.Run(b.log, "event-handler", func() {
			if err := handler(event); err != nil {
				b.log.Errorw("event handler failed",
					"kind", event.Kind,
					"aggregate_id", event.AggregateID,
					"error", err,
				)
			}
		})
	}
}
