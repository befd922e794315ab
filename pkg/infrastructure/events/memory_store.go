package events

import (
	"errors"
	"fmt"
	"sync"
)

// InMemoryEventStore keeps events per stream for the life of the process.
// Subscribers are notified synchronously, after the store lock is released,
// so a handler may read the store.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
	}
}

// AppendEvent versions and stores event, then notifies subscribers.
// Handler failures are joined into the returned error; the event stays
// recorded either way.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	stored := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], stored)
	handlers := append([]EventHandler(nil), s.subscribers[stored.EventType]...)
	s.mutex.Unlock()

	var errs []error
	for _, handler := range handlers {
		if !handler.CanHandle(stored.EventType) {
			continue
		}
		if err := handler.Handle(stored); err != nil {
			errs = append(errs, fmt.Errorf("handling %s: %w", stored.EventType, err))
		}
	}
	return errors.Join(errs...)
}

// ReadEvents returns the events of a stream starting at fromVersion (1-based)
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(events) {
		return []Event{}, nil
	}

	out := make([]Event, len(events)-fromVersion+1)
	copy(out, events[fromVersion-1:])
	return out, nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}
