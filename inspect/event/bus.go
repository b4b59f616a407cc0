// Package event is a small typed publish/subscribe bus used by the presenter
// to announce selection changes and modifications.
package event

import "context"

// DefaultBuffer is the channel capacity of a subscription.
const DefaultBuffer = 1

// Bus fans events out to channel subscribers and synchronous handlers.
//
// Channel delivery never blocks the publisher: a subscriber whose buffer is
// full misses the event. Handlers run inline, in registration order.
//
// The bus is NOT thread-safe. Publish from the host's UI loop.
type Bus[T any] struct {
	subscribers []chan T
	handlers    []func(T)
	buffer      int
	cancel      context.CancelFunc // cancels the context handed out by Next
	closed      bool
}

// NewBus returns a bus whose subscriptions buffer up to buffer events.
func NewBus[T any](buffer int) *Bus[T] {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Bus[T]{
		subscribers: make([]chan T, 0),
		buffer:      buffer,
	}
}

// Subscribe returns a channel that receives future events.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Handle registers fn to be called for every future event.
func (b *Bus[T]) Handle(fn func(T)) {
	b.handlers = append(b.handlers, fn)
}

// Next cancels the context returned by the previous call and returns a new
// one. Publishers attach it to an event so that subscribers can abandon work
// started for an event that has been superseded.
func (b *Bus[T]) Next() context.Context {
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	return ctx
}

// Notify publishes ev.
func (b *Bus[T]) Notify(ev T) {
	if b.closed {
		return
	}
	for _, fn := range b.handlers {
		fn(ev)
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; dropping keeps the UI loop responsive.
		}
	}
}

// Close cancels the outstanding context and closes every subscription.
func (b *Bus[T]) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.cancel != nil {
		b.cancel()
	}
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
	b.handlers = nil
}
