package runtime

import (
	"context"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventEntriesAppended EventType = "entries_appended"
	EventFilterChanged   EventType = "filter_changed"
	EventSourceReset     EventType = "source_reset"
	EventSourceError     EventType = "source_error"
	EventWatchState      EventType = "watch_state"
	EventWatchStopped    EventType = "watch_stopped"
)

// Event represents a runtime event
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// EntriesAppendedData contains ingestion batch details
type EntriesAppendedData struct {
	Count int
	Total int
}

// FilterChangedData contains the filter generation after a mutation
type FilterChangedData struct {
	Generation uint64
}

// SourceResetData contains details of a rotation or truncation
type SourceResetData struct {
	Path string
}

// SourceErrorData contains a transient source failure and the next retry delay
type SourceErrorData struct {
	Err   error
	Retry time.Duration
}

// WatchStateData contains a watcher state transition
type WatchStateData struct {
	State string
}

// WatchStoppedData contains the reason the watch ended
type WatchStoppedData struct {
	Reason string
}

// EventBus defines the interface for event publishing and subscription
type EventBus interface {
	Subscribe(ctx context.Context) <-chan Event
	Publish(event Event)
	Close()
}

type eventBus struct {
	subscribers []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
}

// NewEventBus creates a new event bus with the specified buffer size
func NewEventBus(bufferSize int) EventBus {
	return &eventBus{
		subscribers: make([]chan Event, 0),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a new subscription channel for events
func (eb *eventBus) Subscribe(ctx context.Context) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers = append(eb.subscribers, ch)

	go func() {
		<-ctx.Done()
		eb.unsubscribe(ch)
	}()

	return ch
}

// Publish sends an event to all subscribers
func (eb *eventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	event.Timestamp = time.Now()

	if event.Critical {
		for _, ch := range eb.subscribers {
			ch <- event
		}
	} else {
		for _, ch := range eb.subscribers {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// Close closes all subscriber channels
func (eb *eventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, ch := range eb.subscribers {
		close(ch)
	}

	eb.subscribers = nil
}

func (eb *eventBus) unsubscribe(ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

// NoOpEventBus is a no-operation event bus for tests and detached runs
type noOpEventBus struct{}

// NewNoOpEventBus creates a no-op event bus
func NewNoOpEventBus() EventBus {
	return &noOpEventBus{}
}

func (neb *noOpEventBus) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event)
	close(ch)

	return ch
}

func (neb *noOpEventBus) Publish(event Event) {}

func (neb *noOpEventBus) Close() {}
