package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/notification"
)

const DefaultTimeout = 2 * time.Second

// Outcome reports what happened to one notification. It is informational:
// callers log or return it but never treat Err as their own failure.
type Outcome struct {
	Delivered bool  `json:"delivered"`
	Err       error `json:"-"`
}

func (o Outcome) String() string {
	if o.Delivered {
		return "delivered"
	}
	if o.Err != nil {
		return "failed: " + o.Err.Error()
	}
	return "skipped"
}

// Dispatcher wraps a Sink with client personalisation and a deadline.
type Dispatcher struct {
	sink    notification.Sink
	dir     client.Directory
	timeout time.Duration
}

// NewDispatcher accepts a nil sink (every send is skipped) and a nil directory
// (messages go out without a greeting).
func NewDispatcher(sink notification.Sink, dir client.Directory, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{sink: sink, dir: dir, timeout: timeout}
}

// Send never returns an error; failures are logged and reported in the Outcome.
func (d *Dispatcher) Send(ctx context.Context, clientID string, kind notification.Kind, message string) (out Outcome) {
	if d == nil || d.sink == nil {
		return Outcome{}
	}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: fmt.Errorf("notify panic: %v", r)}
			log.Printf("[notify] client=%s kind=%s: %v", clientID, kind, out.Err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	text := d.personalise(ctx, clientID, message)
	if err := d.sink.Send(ctx, clientID, kind, text); err != nil {
		log.Printf("[notify] client=%s kind=%s: %v", clientID, kind, err)
		return Outcome{Err: err}
	}
	return Outcome{Delivered: true}
}

func (d *Dispatcher) personalise(ctx context.Context, clientID, message string) string {
	if d.dir == nil {
		return message
	}
	c, err := d.dir.Lookup(ctx, clientID)
	if err != nil {
		log.Printf("[notify] lookup client=%s: %v", clientID, err)
		return message
	}
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return message
	}
	return fmt.Sprintf("Dear %s, %s", strings.TrimSpace(c.Name), message)
}

// Notifier is what the ledger engines need from a Dispatcher.
type Notifier interface {
	Send(ctx context.Context, clientID string, kind notification.Kind, message string) Outcome
}

var _ Notifier = (*Dispatcher)(nil)
