package engine

import "fmt"

// ApplyStatuses replaces the raw status map with a freshly received one.
// Transitions are computed by diffing against the previously stored map;
// the wire carries no transition metadata. Entries with unrecognised
// status values are dropped individually, the rest of the map still
// applies.
func (e *Engine) ApplyStatuses(incoming map[string]string) []Effect {
	next := make(map[string]Status, len(incoming))
	for path, raw := range incoming {
		status, ok := ParseStatus(raw)
		if !ok || path == "" {
			continue
		}
		next[path] = status
	}

	var effects []Effect
	for path, status := range next {
		prev, had := e.raw[path]
		switch {
		case had && prev == StatusWaiting && status == StatusGenerating:
			// A new cycle started. Hold the badge out of the view for the
			// reset delay so observers see removal and reappearance as two
			// distinct updates.
			e.resetGen++
			e.resetHold[path] = e.resetGen
			effects = append(effects, ArmTimer{
				Kind:       TimerResetFlush,
				Path:       path,
				Generation: e.resetGen,
				Delay:      e.resetDelay,
			})
		case had && prev == StatusGenerating && status == StatusWaiting:
			if effect, ok := e.noteCompleted(path); ok {
				effects = append(effects, effect)
			}
		}
	}

	// Membership in the dismissed set self-clears the instant the backend
	// reports the path as non-waiting; the notified guard clears the same
	// way so the next completion can fire again.
	for path := range e.dismissed {
		if next[path] != StatusWaiting {
			delete(e.dismissed, path)
		}
	}
	for path := range e.notified {
		if next[path] != StatusWaiting {
			delete(e.notified, path)
		}
	}
	for path := range e.resetHold {
		if _, ok := next[path]; !ok {
			delete(e.resetHold, path)
		}
	}

	e.raw = next
	return append(effects, e.resyncTimer()...)
}

// noteCompleted decides whether a transition into waiting fires a desktop
// notification: only when notifications are enabled, the editor is not the
// frontmost application, and this waiting spell has not already notified.
func (e *Engine) noteCompleted(path string) (Effect, bool) {
	if !e.notifications || e.editorFrontmost {
		return nil, false
	}
	if _, done := e.notified[path]; done {
		return nil, false
	}
	e.notified[path] = struct{}{}
	return RequestNotification{
		Title: LastSegment(path),
		Body:  fmt.Sprintf("%s is waiting for input", LastSegment(path)),
		Path:  path,
	}, true
}

// NotificationClicked acknowledges the waiting badge for a project after
// the user activated its desktop notification.
func (e *Engine) NotificationClicked(path string) []Effect {
	if e.dismissPath(path) {
		return e.resyncTimer()
	}
	return nil
}

// DismissActive acknowledges the active tab's waiting badge. The UI binds
// this to the same acknowledgement path a notification click takes.
func (e *Engine) DismissActive() []Effect {
	if e.active < 0 || e.active >= len(e.view) {
		return nil
	}
	if e.dismissName(e.view[e.active].Name) {
		return e.resyncTimer()
	}
	return nil
}

// dismissName acknowledges the waiting badge behind a window name, if any.
func (e *Engine) dismissName(name string) bool {
	path, status, ok := e.statusForName(name)
	if !ok || status != StatusWaiting {
		return false
	}
	return e.dismissPath(path)
}

func (e *Engine) dismissPath(path string) bool {
	if e.raw[path] != StatusWaiting {
		return false
	}
	if _, already := e.dismissed[path]; already {
		return false
	}
	e.dismissed[path] = struct{}{}
	return true
}
