// Package analytics is a fire-and-forget tracking sink. A Tracker owns its
// page-view dedupe state; it is constructed at startup and torn down with the
// session rather than living in package globals.
package analytics

import "sync"

// Params are the free-form attributes attached to an event.
type Params map[string]any

// Sink receives events. Implementations must not block the caller on failure;
// tracking is best-effort.
type Sink interface {
	Event(name string, params Params)
}

// Tracker de-duplicates identical consecutive page views and forwards
// everything else untouched. A nil sink makes every call a no-op.
type Tracker struct {
	mu       sync.Mutex
	lastPath string
	sink     Sink
}

func NewTracker(sink Sink) *Tracker {
	return &Tracker{sink: sink}
}

// PageView records a page view unless it repeats the previous one.
func (t *Tracker) PageView(path string) {
	if t == nil || t.sink == nil {
		return
	}
	t.mu.Lock()
	if t.lastPath == path {
		t.mu.Unlock()
		return
	}
	t.lastPath = path
	t.mu.Unlock()
	t.sink.Event("page_view", Params{"page_path": path})
}

// Event records a named event with optional params.
func (t *Tracker) Event(name string, params Params) {
	if t == nil || t.sink == nil {
		return
	}
	if params == nil {
		params = Params{}
	}
	t.sink.Event(name, params)
}
