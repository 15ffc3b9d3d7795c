// Package notify carries the user-facing messages raised by workout sessions.
package notify

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultFeedLimit bounds how many undelivered notifications a feed keeps.
const DefaultFeedLimit = 50

// Notification is one message shown to the user.
type Notification struct {
	Message string    `json:"message"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications. Implementations must not block and the
// caller never inspects a result.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(message string, kind Kind) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, kind)
		}
	}
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(string, Kind) {})

// Feed buffers notifications until a client collects them. When full, the
// oldest entry is dropped.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewFeed creates a feed holding at most limit entries (DefaultFeedLimit if limit <= 0).
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Notify(message string, kind Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == f.limit {
		f.items = f.items[1:]
	}
	f.items = append(f.items, Notification{Message: message, Kind: kind, At: f.now()})
}

// Drain returns all pending notifications in arrival order and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

// Pending returns a copy of the pending notifications without removing them.
func (f *Feed) Pending() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification{}, f.items...)
}

// Logger writes notifications to the process log.
type Logger struct {
	entry *log.Entry
}

// NewLogger returns a notifier logging through entry (the standard logger if nil).
func NewLogger(entry *log.Entry) *Logger {
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return &Logger{entry: entry}
}

func (l *Logger) Notify(message string, kind Kind) {
	e := l.entry.WithField("kind", kind)
	if kind == KindError {
		e.Warn(message)
		return
	}
	e.Debug(message)
}
