// Package notify broadcasts user-visible notices. Every error category in
// the pipeline publishes a human-readable notice here in addition to its
// diagnostic log line; the host process decides how notices are shown.
package notify

import (
	"sync"
	"time"
)

// Notice levels.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Notice is a single human-readable message for the user.
type Notice struct {
	Level   string
	Message string
	TS      time.Time
}

type subscriber struct {
	ch   chan Notice
	done chan struct{}
}

// Bus fans notices out to all subscribers. Thread-safe. Subscribers that
// fall behind have notices dropped; a ring buffer of recent notices lets
// late subscribers catch up.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}

	recentMu  sync.RWMutex
	recent    []Notice
	maxRecent int
}

// NewBus creates a notice bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[*subscriber]struct{}),
		maxRecent:   100,
	}
}

// Publish sends a notice to all subscribers. Non-blocking.
func (b *Bus) Publish(level, message string) {
	n := Notice{Level: level, Message: message, TS: time.Now()}

	b.recentMu.Lock()
	b.recent = append(b.recent, n)
	if len(b.recent) > b.maxRecent {
		b.recent = b.recent[len(b.recent)-b.maxRecent:]
	}
	b.recentMu.Unlock()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subscribers {
		select {
		case sub.ch <- n:
		default:
			// subscriber too slow; it can catch up via Recent
		}
	}
}

// Subscribe registers a subscriber. Returns the notice channel and a done
// handle to pass to Unsubscribe.
func (b *Bus) Subscribe() (<-chan Notice, chan struct{}) {
	sub := &subscriber{
		ch:   make(chan Notice, 32),
		done: make(chan struct{}),
	}
	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()
	return sub.ch, sub.done
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(done chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subscribers {
		if sub.done == done {
			close(sub.ch)
			delete(b.subscribers, sub)
			return
		}
	}
}

// Recent returns the last n notices, oldest first.
func (b *Bus) Recent(n int) []Notice {
	b.recentMu.RLock()
	defer b.recentMu.RUnlock()
	if n <= 0 || n > len(b.recent) {
		n = len(b.recent)
	}
	out := make([]Notice, n)
	copy(out, b.recent[len(b.recent)-n:])
	return out
}
