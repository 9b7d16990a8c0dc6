package domain

import (
	"errors"
	"fmt"
	"time"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// DeliveryWindow is added to the creation time to estimate delivery.
const DeliveryWindow = 48 * time.Hour

var (
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrNotCancellable = errors.New("order cannot be cancelled")
)

// stepIndex is the canonical step table. Cancelled is deliberately absent.
var stepIndex = map[Status]int{
	StatusProcessing:     0,
	StatusShipped:        1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

var stepNames = [...]string{"Processing", "Shipped", "Out for Delivery", "Delivered"}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := stepIndex[st]; ok || st == StatusCancelled {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// StepIndex maps a status onto the tracking table.
func (s Status) StepIndex() (int, bool) {
	i, ok := stepIndex[s]
	return i, ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type TrackingStep struct {
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Description string     `json:"description,omitempty"`
}

type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type Order struct {
	ID                string                `json:"id"`
	Items             []cartdomain.CartItem `json:"items"`
	Total             decimal.Decimal       `json:"total"`
	Status            Status                `json:"status"`
	CreatedAt         time.Time             `json:"createdAt"`
	EstimatedDelivery time.Time             `json:"estimatedDelivery"`
	TrackingSteps     []TrackingStep        `json:"trackingSteps"`
	CustomerInfo      *CustomerInfo         `json:"customerInfo,omitempty"`
	PaymentMethod     string                `json:"paymentMethod,omitempty"`
}

// New builds a processing order from a cart snapshot. Only the first
// tracking step is completed.
func New(id string, items cartdomain.Cart, now time.Time, customer *CustomerInfo, payment string) Order {
	steps := make([]TrackingStep, len(stepNames))
	for i, name := range stepNames {
		steps[i] = TrackingStep{Name: name}
	}
	stamp := now
	steps[0].Completed = true
	steps[0].Timestamp = &stamp

	var info *CustomerInfo
	if customer != nil {
		c := *customer
		info = &c
	}

	return Order{
		ID:                id,
		Items:             items.Clone(),
		Total:             items.Subtotal(),
		Status:            StatusProcessing,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(DeliveryWindow),
		TrackingSteps:     steps,
		CustomerInfo:      info,
		PaymentMethod:     payment,
	}
}

// ReachedStep is the highest completed step index, or -1.
func (o Order) ReachedStep() int {
	reached := -1
	for i, s := range o.TrackingSteps {
		if s.Completed {
			reached = i
		}
	}
	return reached
}

// Advance projects target onto the tracking steps and stamps the target
// step. Steps are only ever marked completed, never cleared, so a target
// below the reached step changes nothing. Cancelled orders never advance.
func (o *Order) Advance(target Status, now time.Time) (bool, error) {
	idx, ok := target.StepIndex()
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if o.Status == StatusCancelled || idx < o.ReachedStep() {
		return false, nil
	}

	for i := range o.TrackingSteps {
		if i > idx {
			break
		}
		o.TrackingSteps[i].Completed = true
		if i == idx {
			stamp := now
			o.TrackingSteps[i].Timestamp = &stamp
		}
	}
	o.Status = target
	return true, nil
}

// Cancel moves a processing order to cancelled without touching its steps.
func (o *Order) Cancel() (bool, error) {
	switch o.Status {
	case StatusCancelled:
		return false, nil
	case StatusProcessing:
		o.Status = StatusCancelled
		return true, nil
	default:
		return false, fmt.Errorf("%w: status is %s", ErrNotCancellable, o.Status)
	}
}

func (o Order) ItemCount() int {
	return cartdomain.Cart(o.Items).ItemCount()
}

// Clone returns a deep copy that shares nothing mutable with o.
func (o Order) Clone() Order {
	out := o
	out.Items = cartdomain.Cart(o.Items).Clone()
	out.TrackingSteps = make([]TrackingStep, len(o.TrackingSteps))
	for i, s := range o.TrackingSteps {
		out.TrackingSteps[i] = s
		if s.Timestamp != nil {
			ts := *s.Timestamp
			out.TrackingSteps[i].Timestamp = &ts
		}
	}
	if o.CustomerInfo != nil {
		c := *o.CustomerInfo
		out.CustomerInfo = &c
	}
	return out
}

func (o Order) Validate() error {
	if o.ID == "" {
		return errors.New("order without id")
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return fmt.Errorf("order %s: %w", o.ID, err)
	}
	if len(o.TrackingSteps) != len(stepNames) {
		return fmt.Errorf("order %s: want %d tracking steps, got %d", o.ID, len(stepNames), len(o.TrackingSteps))
	}
	for i, s := range o.TrackingSteps {
		if s.Name != stepNames[i] {
			return fmt.Errorf("order %s: step %d is %q, want %q", o.ID, i, s.Name, stepNames[i])
		}
	}
	return cartdomain.Cart(o.Items).Validate()
}

// History is the order list, most recent first.
type History []Order

func (h History) Index(orderID string) int {
	for i, o := range h {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}

// Prepend returns a new history with o at the head.
func (h History) Prepend(o Order) History {
	out := make(History, 0, len(h)+1)
	out = append(out, o)
	return append(out, h.Clone()...)
}

func (h History) Clone() History {
	out := make(History, len(h))
	for i, o := range h {
		out[i] = o.Clone()
	}
	return out
}

func (h History) Validate() error {
	seen := make(map[string]struct{}, len(h))
	for _, o := range h {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("duplicate order %s", o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}
