package core

import (
	"sync"
	"time"
)

// Category is the severity bucket of an activity event.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryInfo    Category = "info"
	CategoryError   Category = "error"
)

// ActivityEvent is one human-readable log line shown in the UI.
type ActivityEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Category  Category  `json:"category"`
	Message   string    `json:"message"`
}

// DefaultActivityCapacity is the number of events kept when no explicit
// capacity is configured.
const DefaultActivityCapacity = 100

// ActivityLog is a bounded, append-only in-memory record of events.
// Insertion beyond capacity evicts the oldest entry. It is an operational
// convenience, not an audit trail: nothing survives a restart.
type ActivityLog struct {
	mu       sync.Mutex
	events   []ActivityEvent
	capacity int
}

// NewActivityLog creates a log bounded to the given capacity.
// Non-positive capacities fall back to DefaultActivityCapacity.
func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityLog{capacity: capacity}
}

// Record appends an event, evicting the oldest when full.
func (l *ActivityLog) Record(category Category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ActivityEvent{
		Timestamp: time.Now(),
		Category:  category,
		Message:   message,
	})
	if len(l.events) > l.capacity {
		// Shift instead of re-slicing to let the evicted entry be collected.
		copy(l.events, l.events[1:])
		l.events = l.events[:l.capacity]
	}
}

// Recent returns up to limit events, newest first.
// A non-positive limit returns everything retained.
func (l *ActivityLog) Recent(limit int) []ActivityEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.events)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]ActivityEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = l.events[n-1-i]
	}
	return out
}

// Len returns the number of retained events.
func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
