package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTab = errors.New("invalid order tab")

// Tab groups orders the way the order history page lists them.
type Tab string

const (
	TabAll       Tab = "all"
	TabCurrent   Tab = "current"
	TabDelivered Tab = "delivered"
	TabCancelled Tab = "cancelled"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case "":
		return TabAll, nil
	case TabAll, TabCurrent, TabDelivered, TabCancelled:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
}

func (t Tab) Matches(o Order) bool {
	switch t {
	case TabCurrent:
		return !o.Status.Terminal()
	case TabDelivered:
		return o.Status == StatusDelivered
	case TabCancelled:
		return o.Status == StatusCancelled
	default:
		return true
	}
}

func (h History) Filter(t Tab) History {
	out := History{}
	for _, o := range h {
		if t.Matches(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// Between keeps orders created inside [start, end].
func (h History) Between(start, end time.Time) History {
	out := History{}
	for _, o := range h {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, o.Clone())
		}
	}
	return out
}
