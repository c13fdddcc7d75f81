package notifymock

import (
	"context"
	"sync"

	"clinic-booking/internal/domain/notification"
)

var (
	_ notification.Dispatcher      = (*Dispatcher)(nil)
	_ notification.ConfirmNotifier = (*ConfirmNotifier)(nil)
	_ notification.Publisher       = (*Publisher)(nil)
)

// Dispatcher records bookings and returns Result.
type Dispatcher struct {
	mu     sync.Mutex
	Result bool
	Calls  []notification.Booking
}

func (d *Dispatcher) Notify(_ context.Context, b notification.Booking) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, b)
	return d.Result
}

type ConfirmNotifier struct {
	mu    sync.Mutex
	Calls []notification.Confirmation
}

func (c *ConfirmNotifier) NotifyConfirmed(_ context.Context, in notification.Confirmation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, in)
	return true
}

type Publisher struct {
	mu     sync.Mutex
	Err    error
	Events []notification.Event
}

func (p *Publisher) Publish(_ context.Context, ev notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, ev)
	return p.Err
}

func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Events))
	for _, ev := range p.Events {
		out = append(out, ev.Type)
	}
	return out
}
