// Package bus provides the append-only message log used to trace
// inter-component communication during one orchestrated request.
package bus

import (
	"time"

	"github.com/healthbutler/swarm/pkg/models"
)

// MessageBus is an ordered, append-only log of messages between the user,
// the orchestrator, and workers. A bus is scoped to a single request: the
// orchestrator creates a fresh instance per call, so no locking is needed.
type MessageBus struct {
	messages []models.Message
	now      func() time.Time
}

// New creates an empty message bus.
func New() *MessageBus {
	return &MessageBus{now: time.Now}
}

// Send appends a message stamped with the current time. It never fails.
func (b *MessageBus) Send(from, to models.Participant, kind models.MessageKind, content string) {
	b.messages = append(b.messages, models.Message{
		From:      from,
		To:        to,
		Kind:      kind,
		Content:   content,
		Timestamp: b.now(),
	})
}

// ContextFor returns all messages sent to or from the given participant,
// in insertion order.
func (b *MessageBus) ContextFor(participant models.Participant) []models.Message {
	var out []models.Message
	for _, m := range b.messages {
		if m.From == participant || m.To == participant {
			out = append(out, m)
		}
	}
	return out
}

// AllMessages returns a copy of the full log in insertion order. Mutating
// the returned slice does not affect the bus.
func (b *MessageBus) AllMessages() []models.Message {
	out := make([]models.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// StatusUpdates returns only status messages, in insertion order.
func (b *MessageBus) StatusUpdates() []models.Message {
	var out []models.Message
	for _, m := range b.messages {
		if m.Kind == models.KindStatus {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of messages on the bus.
func (b *MessageBus) Len() int {
	return len(b.messages)
}

// Clear empties the log. It is called between independent top-level
// requests, never within one.
func (b *MessageBus) Clear() {
	b.messages = nil
}
