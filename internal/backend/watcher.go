// Package backend polls the external collaborators (editor windows, the
// session-events file) and publishes their observations as a single event
// stream consumed by the UI loop.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/mtakeda/editor-tab-sync/internal/editor"
	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/statusfile"
)

// Kind identifies what a backend event carries.
type Kind int

const (
	// KindSnapshot replaces the window list (windows-changed).
	KindSnapshot Kind = iota
	// KindFocus reports a frontmost-window change (window-focus-changed),
	// delivered with the re-queried snapshot.
	KindFocus
	// KindStatus replaces the raw status map.
	KindStatus
)

// Event conveys updated data or an error from one poll.
type Event struct {
	Kind     Kind
	Snapshot engine.Snapshot
	Statuses map[string]string
	Err      error
}

// Intervals tunes the poll cadence per source.
type Intervals struct {
	Snapshot time.Duration
	Focus    time.Duration
	Status   time.Duration
}

// Watcher owns the poller goroutines. Events are emitted on a buffered
// channel; Stop cancels the pollers and Wait drains them.
type Watcher struct {
	client editor.Client
	reader *statusfile.Reader

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling immediately. Each poller emits once up front
// so the UI renders real data without waiting a full interval.
func NewWatcher(client editor.Client, reader *statusfile.Reader, iv Intervals) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		client: client,
		reader: reader,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	w.startSnapshotPoller(iv.Snapshot)
	w.startFocusPoller(iv.Focus)
	w.startStatusPoller(iv.Status)

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the backend event channel. It closes after Stop once all
// pollers have exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events
// channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startSnapshotPoller(interval time.Duration) {
	w.wg.Add(1)
	go w.poll(interval, func(ctx context.Context) (Event, bool) {
		snap, err := w.client.Snapshot(ctx)
		return Event{Kind: KindSnapshot, Snapshot: snap, Err: err}, true
	})
}

// startFocusPoller watches the frontmost window at a faster cadence than
// the full snapshot poll and emits only on change, so the engine's
// debounce sees focus events close to when the OS generated them.
func (w *Watcher) startFocusPoller(interval time.Duration) {
	var lastID int
	var lastActive bool
	first := true
	w.wg.Add(1)
	go w.poll(interval, func(ctx context.Context) (Event, bool) {
		snap, err := w.client.Snapshot(ctx)
		if err != nil {
			// Snapshot errors surface through the snapshot poller; a failed
			// focus probe is just a skipped observation.
			return Event{}, false
		}
		id := 0
		if snap.ActiveIndex >= 0 && snap.ActiveIndex < len(snap.Windows) {
			id = snap.Windows[snap.ActiveIndex].ID
		}
		if first {
			first = false
			lastID, lastActive = id, snap.IsActive
			return Event{}, false
		}
		if id == lastID && snap.IsActive == lastActive {
			return Event{}, false
		}
		lastID, lastActive = id, snap.IsActive
		return Event{Kind: KindFocus, Snapshot: snap}, true
	})
}

func (w *Watcher) startStatusPoller(interval time.Duration) {
	first := true
	w.wg.Add(1)
	go w.poll(interval, func(ctx context.Context) (Event, bool) {
		statuses, changed, err := w.reader.Poll()
		if err != nil {
			return Event{Kind: KindStatus, Statuses: statuses, Err: err}, true
		}
		if !changed && !first {
			return Event{}, false
		}
		first = false
		return Event{Kind: KindStatus, Statuses: statuses}, true
	})
}

func (w *Watcher) poll(interval time.Duration, fetch func(context.Context) (Event, bool)) {
	defer w.wg.Done()

	emit := func() bool {
		evt, ok := fetch(w.ctx)
		if !ok {
			return true
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
