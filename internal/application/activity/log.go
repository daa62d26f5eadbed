// Package activity keeps a short, in-memory history of what happened in the store,
// fed by domain events.
package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
)

// DefaultCapacity is the number of entries kept when no capacity is configured
const DefaultCapacity = 100

// Entry is one line of the activity log
type Entry struct {
	At        time.Time `json:"at"`
	EventType string    `json:"event_type"`
	Message   string    `json:"message"`
}

// Log is a fixed-size ring of the most recent entries. It is safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// NewLog creates a log that keeps at most capacity entries
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{entries: make([]Entry, capacity)}
}

// Append records an entry, evicting the oldest one when the log is full
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = entry
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns everything.
func (l *Log) Recent(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	result := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (l.next - 1 - i + len(l.entries)) % len(l.entries)
		result = append(result, l.entries[idx])
	}
	return result
}

// Len returns the number of entries currently held
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Handler turns store events into activity log entries
type Handler struct {
	log *Log
}

// NewHandler creates a handler writing to log
func NewHandler(log *Log) *Handler {
	return &Handler{log: log}
}

// EventTypes returns the event types this handler is interested in
func (h *Handler) EventTypes() []string {
	return []string{
		partner.EventTypeCustomerRegistered,
		catalog.EventTypeProductAdded,
	}
}

// Handle appends a line describing the event
func (h *Handler) Handle(_ context.Context, event shared.DomainEvent) error {
	var message string
	switch e := event.(type) {
	case *partner.CustomerRegisteredEvent:
		message = fmt.Sprintf("Customer registered: %s (ID: %s)", e.Name, e.CustomerID)
	case *catalog.ProductAddedEvent:
		message = fmt.Sprintf("Product added: %s (ID: %s)", e.Name, e.ProductID)
	default:
		return fmt.Errorf("activity: unexpected event type %s", event.EventType())
	}

	h.log.Append(Entry{
		At:        event.OccurredAt(),
		EventType: event.EventType(),
		Message:   message,
	})
	return nil
}
