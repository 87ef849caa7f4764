package notifymock

import (
	"context"
	"sync"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/notification"
)

var (
	_ notification.Sink = (*Sink)(nil)
	_ client.Directory  = (*Directory)(nil)
)

// Message is one call recorded by Sink.
type Message struct {
	ClientID string
	Kind     notification.Kind
	Text     string
}

// Sink records every message. Err, when set, is returned after recording.
type Sink struct {
	mu   sync.Mutex
	Sent []Message
	Err  error
}

func (s *Sink) Send(_ context.Context, clientID string, kind notification.Kind, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, Message{ClientID: clientID, Kind: kind, Text: message})
	return s.Err
}

// OfKind returns the recorded messages of one kind.
func (s *Sink) OfKind(k notification.Kind) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Message
	for _, m := range s.Sent {
		if m.Kind == k {
			out = append(out, m)
		}
	}
	return out
}

// Directory serves clients from a map keyed by client id.
type Directory map[string]client.Client

func (d Directory) Lookup(_ context.Context, clientID string) (*client.Client, error) {
	c, ok := d[clientID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
