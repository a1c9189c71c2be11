// Package channels pkg/channels/registry.go implements the named fan-out
// registry the sync engine publishes through. Channels are created
// implicitly on the first subscribe and removed when the last subscriber
// leaves.
package channels

import (
	"log"
	"sync"
)

// Callback receives every payload published to a channel it is
// subscribed to. Callbacks run synchronously, in registration order.
type Callback func(payload interface{})

// subscription is a single registration. The same callback value
// registered twice yields two independent subscriptions.
type subscription struct {
	cb Callback
}

// Registry maps channel names to ordered subscriber lists. The zero value
// is not usable; call NewRegistry.
type Registry struct {
	mu       sync.Mutex
	channels map[string][]*subscription
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string][]*subscription),
	}
}

// Subscribe registers cb under the named channel and returns an
// unsubscribe func that removes exactly this registration. Calling
// unsubscribe more than once is a no-op. When the last registration on a
// channel is removed, the channel entry itself is dropped so that
// long-running processes do not accumulate empty channels.
func (r *Registry) Subscribe(channel string, cb Callback) func() {
	sub := &subscription{cb: cb}

	r.mu.Lock()
	r.channels[channel] = append(r.channels[channel], sub)
	r.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			r.remove(channel, sub)
		})
	}
}

func (r *Registry) remove(channel string, sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.channels[channel]
	for i, s := range subs {
		if s == sub {
			r.channels[channel] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}

	if len(r.channels[channel]) == 0 {
		delete(r.channels, channel)
	}
}

// Publish delivers payload to every subscriber currently registered on the
// named channel, in registration order. The subscriber list is snapshotted
// up front, so a subscribe or unsubscribe issued from inside a callback
// takes effect on the next publish, never the one in flight. A panicking
// callback is recovered and logged; remaining callbacks still run and the
// caller never sees the failure. Publishing to a channel with no
// subscribers is a no-op.
func (r *Registry) Publish(channel string, payload interface{}) {
	r.mu.Lock()
	subs := make([]*subscription, len(r.channels[channel]))
	copy(subs, r.channels[channel])
	r.mu.Unlock()

	for _, sub := range subs {
		r.invoke(channel, sub.cb, payload)
	}
}

func (r *Registry) invoke(channel string, cb Callback, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Subscriber panic on channel %q: %v", channel, rec)
		}
	}()

	cb(payload)
}

// Channels returns the names of all channels with at least one subscriber.
func (r *Registry) Channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}

	return names
}

// SubscriberCount returns the number of registrations on a channel.
func (r *Registry) SubscriberCount(channel string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.channels[channel])
}
