// Package eventbus is a synchronous publish/subscribe channel between state
// mutations and the views that redraw from them.
//
// Every Topic carries exactly one payload type, so a publisher and its
// subscribers cannot drift apart. Handlers run on the publishing goroutine in
// registration order. A failing or panicking handler is logged and skipped;
// the remaining handlers still run. A Publish issued while a dispatch is
// already running is queued and delivered after that dispatch finishes.
//
// A Bus is not safe for concurrent use; callers serialise access the same way
// they serialise state mutations.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

type Topic[T any] struct {
	name string
}

func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

func (t Topic[T]) Name() string {
	return t.name
}

type Handler[T any] func(ctx context.Context, payload T) error

type handlerFunc func(ctx context.Context, payload any) error

type delivery struct {
	ctx     context.Context
	topic   string
	payload any
}

type Bus struct {
	log         *slog.Logger
	handlers    map[string][]handlerFunc
	dispatching bool
	queue       []delivery
}

func New(log *slog.Logger) *Bus {
	return &Bus{
		log:      logger.OrDiscard(log).With("component", "eventbus"),
		handlers: map[string][]handlerFunc{},
	}
}

// Subscribe registers h for the lifetime of the bus.
func Subscribe[T any](b *Bus, topic Topic[T], h Handler[T]) {
	b.handlers[topic.name] = append(b.handlers[topic.name], func(ctx context.Context, payload any) error {
		p, ok := payload.(T)
		if !ok {
			return fmt.Errorf("eventbus: topic %s got payload %T", topic.name, payload)
		}
		return h(ctx, p)
	})
}

// Publish delivers payload to every handler of topic before returning, unless
// it is called from inside a handler, in which case delivery happens once the
// running dispatch completes.
func Publish[T any](ctx context.Context, b *Bus, topic Topic[T], payload T) {
	b.queue = append(b.queue, delivery{ctx: ctx, topic: topic.name, payload: payload})
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		d := b.queue[0]
		b.queue = b.queue[1:]
		b.deliver(d)
	}
}

func (b *Bus) Subscribers(topic string) int {
	return len(b.handlers[topic])
}

func (b *Bus) deliver(d delivery) {
	for i, h := range b.handlers[d.topic] {
		if err := b.invoke(d, h); err != nil {
			b.log.Error("event handler failed",
				slog.String("topic", d.topic),
				slog.Int("handler", i),
				slog.Any("err", err),
			)
		}
	}
}

func (b *Bus) invoke(d delivery, h handlerFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(d.ctx, d.payload)
}
