// Package notify carries user-visible, dismissible messages. Nothing sent
// here is fatal; it is the engine's only way to tell a user that something
// went wrong (or right).
package notify

import (
	"context"
	"time"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

var Topic = eventbus.NewTopic[Notification]("notification")

// Notifier publishes notifications on a bus.
type Notifier struct {
	bus *eventbus.Bus
	now func() time.Time
}

func NewNotifier(bus *eventbus.Bus) *Notifier {
	return &Notifier{bus: bus, now: time.Now}
}

func (n *Notifier) Send(ctx context.Context, level Level, message string) {
	if n == nil || n.bus == nil {
		return
	}
	eventbus.Publish(ctx, n.bus, Topic, Notification{Level: level, Message: message, At: n.now()})
}

func (n *Notifier) Success(ctx context.Context, message string) { n.Send(ctx, LevelSuccess, message) }
func (n *Notifier) Info(ctx context.Context, message string)    { n.Send(ctx, LevelInfo, message) }
func (n *Notifier) Warning(ctx context.Context, message string) { n.Send(ctx, LevelWarning, message) }
func (n *Notifier) Error(ctx context.Context, message string)   { n.Send(ctx, LevelError, message) }

// Inbox buffers the most recent notifications until a view drains them.
type Inbox struct {
	limit int
	items []Notification
}

func NewInbox(bus *eventbus.Bus, limit int) *Inbox {
	if limit <= 0 {
		limit = 20
	}
	in := &Inbox{limit: limit}
	eventbus.Subscribe(bus, Topic, func(_ context.Context, n Notification) error {
		in.items = append(in.items, n)
		if over := len(in.items) - in.limit; over > 0 {
			in.items = in.items[over:]
		}
		return nil
	})
	return in
}

// Drain returns the pending notifications and dismisses them.
func (in *Inbox) Drain() []Notification {
	out := in.items
	in.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
