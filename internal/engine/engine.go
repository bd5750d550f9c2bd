// Package engine keeps the rendered tab list consistent with externally
// managed editor windows and an externally observed session-status stream.
// A single Engine value owns all mutable synchronisation state; callers
// feed it one event at a time and execute the effects it returns.
package engine

import (
	"fmt"
	"time"
)

// Options tunes the engine's delays and notification behaviour. Zero
// values fall back to the package defaults.
type Options struct {
	ClickDebounce    time.Duration
	ResetDelay       time.Duration
	AutoDismissDelay time.Duration
	Notifications    bool

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Engine is the single-writer state machine behind the tab bar. It is not
// safe for concurrent use; the surrounding event loop guarantees one event
// is processed to completion before the next begins.
type Engine struct {
	orders   OrderStore
	editorID string

	view   []Window
	active int

	order []string

	raw       map[string]Status
	dismissed map[string]struct{}
	notified  map[string]struct{}
	resetHold map[string]uint64

	editorFrontmost bool

	lastClick time.Time

	debounce      time.Duration
	resetDelay    time.Duration
	autoDismiss   time.Duration
	notifications bool

	// dismissGen invalidates outstanding auto-dismiss timers; resetGen
	// invalidates outstanding reset flushes per path.
	dismissGen uint64
	resetGen   uint64
	armedPath  string

	now func() time.Time
}

// New loads the persisted tab order for the editor identity and returns a
// ready engine. The initial timer resync is part of construction, matching
// the process-start resync requirement (it arms nothing while the raw map
// is empty).
func New(orders OrderStore, editorID string, opts Options) (*Engine, []Effect, error) {
	order, err := orders.Load(editorID)
	if err != nil {
		return nil, nil, fmt.Errorf("load tab order: %w", err)
	}
	e := &Engine{
		orders:        orders,
		editorID:      editorID,
		active:        -1,
		order:         order,
		raw:           map[string]Status{},
		dismissed:     map[string]struct{}{},
		notified:      map[string]struct{}{},
		resetHold:     map[string]uint64{},
		debounce:      opts.ClickDebounce,
		resetDelay:    opts.ResetDelay,
		autoDismiss:   opts.AutoDismissDelay,
		notifications: opts.Notifications,
		now:           opts.Now,
	}
	if e.debounce <= 0 {
		e.debounce = DefaultClickDebounce
	}
	if e.resetDelay <= 0 {
		e.resetDelay = DefaultResetDelay
	}
	if e.autoDismiss <= 0 {
		e.autoDismiss = DefaultAutoDismissDelay
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, e.resyncTimer(), nil
}

// Tabs returns the current reconciled view with badges applied.
func (e *Engine) Tabs() []Tab {
	tabs := make([]Tab, len(e.view))
	for i, w := range e.view {
		tabs[i] = Tab{Window: w, Status: e.badgeFor(w.Name)}
	}
	return tabs
}

// ActiveIndex returns the active tab index, or -1 when the view is empty.
func (e *Engine) ActiveIndex() int {
	return e.active
}

// EditorFrontmost reports whether the last snapshot saw the editor as the
// frontmost application.
func (e *Engine) EditorFrontmost() bool {
	return e.editorFrontmost
}

// Order returns the persisted name order currently in effect.
func (e *Engine) Order() []string {
	return append([]string(nil), e.order...)
}

// Dismissed reports whether a project path is currently suppressed.
func (e *Engine) Dismissed(path string) bool {
	_, ok := e.dismissed[path]
	return ok
}

// badgeFor resolves the visible status for a window name: the raw status of
// the matching path, minus dismissed waiting entries, minus paths held back
// while a reset is in flight.
func (e *Engine) badgeFor(name string) Status {
	path, status, ok := e.statusForName(name)
	if !ok {
		return ""
	}
	if _, held := e.resetHold[path]; held {
		return ""
	}
	if status == StatusWaiting {
		if _, dismissed := e.dismissed[path]; dismissed {
			return ""
		}
	}
	return status
}

// statusForName finds the raw status entry whose path basename matches a
// window name. When two paths share a basename the lexicographically first
// wins; the collision is a documented limitation of name-based matching.
func (e *Engine) statusForName(name string) (string, Status, bool) {
	if name == "" {
		return "", "", false
	}
	bestPath := ""
	var bestStatus Status
	for path, status := range e.raw {
		if LastSegment(path) != name {
			continue
		}
		if bestPath == "" || path < bestPath {
			bestPath = path
			bestStatus = status
		}
	}
	if bestPath == "" {
		return "", "", false
	}
	return bestPath, bestStatus, true
}

// activeWaitingPath returns the raw-waiting, not-yet-dismissed path bound
// to the active tab, or "".
func (e *Engine) activeWaitingPath() string {
	if e.active < 0 || e.active >= len(e.view) {
		return ""
	}
	path, status, ok := e.statusForName(e.view[e.active].Name)
	if !ok || status != StatusWaiting {
		return ""
	}
	if _, dismissed := e.dismissed[path]; dismissed {
		return ""
	}
	return path
}
