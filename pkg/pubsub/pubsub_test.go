package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBasicPubSub(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	sub := ps.Subscribe(context.Background(), "estimates")
	if sub == nil {
		t.Fatal("Subscribe returned nil")
	}
	defer sub.Unsubscribe()

	ps.Publish("estimates", "record")

	select {
	case msg := <-sub.Channel():
		if msg != "record" {
			t.Errorf("Expected 'record', got %v", msg)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	const numSubscribers = 5
	subs := make([]*Subscription, numSubscribers)
	for i := range subs {
		subs[i] = ps.Subscribe(context.Background(), "estimates")
		defer subs[i].Unsubscribe()
	}

	ps.Publish("estimates", 42)

	for i, sub := range subs {
		select {
		case msg := <-sub.Channel():
			if msg != 42 {
				t.Errorf("Subscriber %d: expected 42, got %v", i, msg)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("Subscriber %d: timeout waiting for message", i)
		}
	}
}

func TestTopicIsolation(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	subA := ps.Subscribe(context.Background(), "estimates")
	subB := ps.Subscribe(context.Background(), "other")
	defer subA.Unsubscribe()
	defer subB.Unsubscribe()

	ps.Publish("estimates", "for-a")

	select {
	case msg := <-subA.Channel():
		if msg != "for-a" {
			t.Errorf("Expected 'for-a', got %v", msg)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for topic message")
	}

	select {
	case msg := <-subB.Channel():
		t.Errorf("Topic 'other' received unrelated message %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	// Never drained: the buffer fills and further publishes must drop
	sub := ps.Subscribe(context.Background(), "estimates")
	defer sub.Unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			ps.Publish("estimates", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	sub := ps.Subscribe(context.Background(), "estimates")
	sub.Unsubscribe()

	if n := ps.SubscriberCount("estimates"); n != 0 {
		t.Errorf("Expected 0 subscribers after unsubscribe, got %d", n)
	}
}

func TestContextCancellationUnsubscribes(t *testing.T) {
	ps := NewPubSub()
	defer ps.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ps.Subscribe(ctx, "estimates")
	cancel()

	deadline := time.After(1 * time.Second)
	for ps.SubscriberCount("estimates") != 0 {
		select {
		case <-deadline:
			t.Fatal("Subscription not removed after context cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSubscribeAfterShutdown(t *testing.T) {
	ps := NewPubSub()
	ps.Shutdown()

	if sub := ps.Subscribe(context.Background(), "estimates"); sub != nil {
		t.Error("Expected nil subscription after shutdown")
	}
}
