package streaming

import (
	"context"
	"strconv"
	"sync"

	"scambait-lab/pkg/logger"
)

// EventBus distributes honeypot events to local subscribers and fans
// out to NATS when available. A nil NATS publisher makes it a purely
// in-process bus.
type EventBus struct {
	nats   *NATSPublisher
	logger *logger.Logger

	mu          sync.RWMutex
	subscribers map[string]*subscriber
	nextID      int
}

// subscriber pairs a delivery channel with its event filter. The
// channel is closed exactly once, under the subscriber's own lock, and
// every delivery goes through send.
type subscriber struct {
	filter *Subscription

	mu     sync.Mutex
	ch     chan *VerdictEvent
	closed bool
}

// send delivers an event without blocking. Returns false when the
// subscriber is closed or its channel is full.
func (s *subscriber) send(event *VerdictEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// NewEventBus creates a new event bus
func NewEventBus(nats *NATSPublisher, log *logger.Logger) *EventBus {
	return &EventBus{
		nats:        nats,
		logger:      log.WithComponent("event-bus"),
		subscribers: make(map[string]*subscriber),
	}
}

// PublishVerdict publishes a verdict event to all subscribers whose
// filter matches
func (eb *EventBus) PublishVerdict(ctx context.Context, event *VerdictEvent) error {
	if eb.nats != nil && eb.nats.IsConnected() {
		if err := eb.nats.PublishVerdict(ctx, event); err != nil {
			eb.logger.Warn().Err(err).Msg("failed to publish to NATS, using local broadcast only")
		}
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for id, sub := range eb.subscribers {
		if sub.filter != nil && !sub.filter.Matches(event) {
			continue
		}
		if !sub.send(event) {
			eb.logger.Debug().Str("subscriber", id).Msg("subscriber not receiving, dropping event")
		}
	}

	return nil
}

// PublishIntel publishes an intel artifact event
func (eb *EventBus) PublishIntel(ctx context.Context, event *IntelEvent) error {
	if eb.nats != nil && eb.nats.IsConnected() {
		if err := eb.nats.PublishIntel(ctx, event); err != nil {
			eb.logger.Warn().Err(err).Msg("failed to publish intel event to NATS")
		}
	}
	return nil
}

// Subscribe registers a subscriber and returns its event channel plus
// an idempotent unsubscribe function. A nil filter receives everything.
func (eb *EventBus) Subscribe(ctx context.Context, filter *Subscription) (<-chan *VerdictEvent, func()) {
	sub := &subscriber{
		filter: filter,
		ch:     make(chan *VerdictEvent, 100),
	}

	eb.mu.Lock()
	eb.nextID++
	id := strconv.Itoa(eb.nextID)
	eb.subscribers[id] = sub
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", id).Msg("new subscriber")

	unsubscribe := func() {
		eb.mu.Lock()
		delete(eb.subscribers, id)
		eb.mu.Unlock()
		sub.close()
	}

	// If NATS is available, relay distributed events from other
	// instances. The relay channel closes when ctx ends, and send is
	// a no-op once the subscriber is closed.
	if eb.nats != nil && eb.nats.IsConnected() {
		natsCh, err := eb.nats.Subscribe(ctx, filter)
		if err != nil {
			eb.logger.Warn().Err(err).Msg("NATS subscribe failed, local events only")
		} else {
			go func() {
				for event := range natsCh {
					sub.send(event)
				}
			}()
		}
	}

	return sub.ch, unsubscribe
}

// SubscriberCount returns the number of active subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// Close closes the event bus
func (eb *EventBus) Close() {
	eb.mu.Lock()
	subs := eb.subscribers
	eb.subscribers = make(map[string]*subscriber)
	eb.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}

	if eb.nats != nil {
		eb.nats.Close()
	}
}
