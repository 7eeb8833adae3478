package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/adbrdt/folio/internal/store"
)

// Subscribe opens a pub/sub stream of change events for one collection.
// Events published by any process writing through this adapter are decoded
// and forwarded; the channel closes when the subscription is closed.
func (s *Store) Subscribe(ctx context.Context, collection string) (store.Subscription, error) {
	pubsub := s.client.Subscribe(ctx, ChangeChannel(collection))

	// Force the SUBSCRIBE round-trip now so an unreachable backend surfaces
	// here instead of as a silently dead stream.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, unavailable("subscribe "+collection, err)
	}

	sub := &subscription{
		pubsub: pubsub,
		events: make(chan store.Event, 16),
	}
	go sub.pump()
	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	events chan store.Event
}

func (sub *subscription) Events() <-chan store.Event { return sub.events }

// Close tears down the pub/sub connection. pump drains the message channel
// go-redis closes and then closes the events channel, so no events are
// delivered after Close returns to a caller that drains Events().
func (sub *subscription) Close() error {
	return sub.pubsub.Close()
}

func (sub *subscription) pump() {
	defer close(sub.events)
	for msg := range sub.pubsub.Channel() {
		var ev store.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			continue
		}
		sub.events <- ev
	}
}
