package memory

import (
	"context"
	"sync"

	"clinic-frontdesk/internal/ports/realtime"
)

const defaultBuffer = 64

// Broker es un pub/sub en proceso. Publish bloquea si el buffer de un suscriptor está lleno
// (hasta que consuma, cierre o se cancele ctx).
type Broker struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	buffer int
}

func NewBroker() *Broker {
	return &Broker{subs: map[*subscription]struct{}{}, buffer: defaultBuffer}
}

type subscription struct {
	broker *Broker
	table  string
	event  realtime.EventType

	ch   chan realtime.Notification
	done chan struct{}
	once sync.Once
}

func (b *Broker) Subscribe(_ context.Context, table string, event realtime.EventType) (realtime.Subscription, error) {
	s := &subscription{
		broker: b,
		table:  table,
		event:  event,
		ch:     make(chan realtime.Notification, b.buffer),
		done:   make(chan struct{}),
	}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}

func (b *Broker) Publish(ctx context.Context, n realtime.Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		if !realtime.Matches(n, s.table, s.event) {
			continue
		}
		select {
		case s.ch <- n:
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *subscription) C() <-chan realtime.Notification { return s.ch }

func (s *subscription) Close() error {
	s.once.Do(func() {
		// done primero para destrabar un Publish que tenga el RLock.
		close(s.done)
		s.broker.mu.Lock()
		delete(s.broker.subs, s)
		s.broker.mu.Unlock()
		close(s.ch)
	})
	return nil
}
