// Package pubsub provides in-process publish/subscribe fan-out of
// pipeline events to output sinks (printers, socket publishers).
package pubsub

import (
	"context"
	"sync"
)

// subscriberBuffer is the per-subscription channel depth. Publishing
// never blocks: a full subscriber drops messages rather than stalling
// the pipeline.
const subscriberBuffer = 256

// PubSub provides publish/subscribe fan-out by topic.
type PubSub struct {
	subscribers map[string]map[*Subscription]bool
	mu          sync.RWMutex
	shutdown    chan struct{}
	shutdownMu  sync.Mutex
	isShutdown  bool
}

// Subscription represents a subscription to a topic.
type Subscription struct {
	topic     string
	channel   chan any
	ps        *PubSub
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPubSub creates a new PubSub instance.
func NewPubSub() *PubSub {
	return &PubSub{
		subscribers: make(map[string]map[*Subscription]bool),
		shutdown:    make(chan struct{}),
	}
}

// Subscribe creates a new subscription to a topic. The subscription is
// released when the context is cancelled, Unsubscribe is called, or the
// PubSub shuts down. Returns nil after shutdown.
func (ps *PubSub) Subscribe(ctx context.Context, topic string) *Subscription {
	ps.shutdownMu.Lock()
	if ps.isShutdown {
		ps.shutdownMu.Unlock()
		return nil
	}
	ps.shutdownMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		topic:   topic,
		channel: make(chan any, subscriberBuffer),
		ps:      ps,
		cancel:  cancel,
	}

	ps.mu.Lock()
	if ps.subscribers[topic] == nil {
		ps.subscribers[topic] = make(map[*Subscription]bool)
	}
	ps.subscribers[topic][sub] = true
	ps.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-ps.shutdown:
			sub.close()
		}
	}()

	return sub
}

// Publish sends a message to all subscribers of a topic. A snapshot of
// the subscriber set is taken under lock; sends happen outside the lock
// and never block (a full subscriber misses the message).
func (ps *PubSub) Publish(topic string, message any) {
	ps.shutdownMu.Lock()
	if ps.isShutdown {
		ps.shutdownMu.Unlock()
		return
	}
	ps.shutdownMu.Unlock()

	ps.mu.RLock()
	topicSubs := ps.subscribers[topic]
	if len(topicSubs) == 0 {
		ps.mu.RUnlock()
		return
	}
	subs := make([]*Subscription, 0, len(topicSubs))
	for sub := range topicSubs {
		subs = append(subs, sub)
	}
	ps.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.channel <- message:
		default:
			// Subscriber full, drop
		}
	}
}

// SubscriberCount returns the number of subscribers for a topic.
func (ps *PubSub) SubscriberCount(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subscribers[topic])
}

// Shutdown closes all subscriptions and shuts down the PubSub.
func (ps *PubSub) Shutdown() {
	ps.shutdownMu.Lock()
	if ps.isShutdown {
		ps.shutdownMu.Unlock()
		return
	}
	ps.isShutdown = true
	ps.shutdownMu.Unlock()

	close(ps.shutdown)

	ps.mu.Lock()
	for topic := range ps.subscribers {
		for sub := range ps.subscribers[topic] {
			sub.close()
		}
		delete(ps.subscribers, topic)
	}
	ps.mu.Unlock()
}

// Channel returns the subscription's message channel.
func (s *Subscription) Channel() <-chan any {
	return s.channel
}

// Unsubscribe removes the subscription.
func (s *Subscription) Unsubscribe() {
	s.cancel()

	s.ps.mu.Lock()
	defer s.ps.mu.Unlock()

	if s.ps.subscribers[s.topic] != nil {
		delete(s.ps.subscribers[s.topic], s)
		if len(s.ps.subscribers[s.topic]) == 0 {
			delete(s.ps.subscribers, s.topic)
		}
	}

	s.close()
}

// close closes the subscription channel safely (idempotent).
func (s *Subscription) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
