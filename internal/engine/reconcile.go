package engine

import (
	"fmt"
	"sort"
)

// ApplySnapshot replaces the view with a freshly enumerated window list,
// sorted by the persisted order. When the enumeration itself failed the
// previous view is left untouched and the error is surfaced. The returned
// changed flag is true only when a name at some position differs or the
// length changed; id, path and branch churn alone does not count.
func (e *Engine) ApplySnapshot(snap Snapshot, err error) (bool, []Effect, error) {
	if err != nil {
		return false, nil, fmt.Errorf("window snapshot: %w", err)
	}
	e.editorFrontmost = snap.IsActive

	prevName := ""
	if e.active >= 0 && e.active < len(e.view) {
		prevName = e.view[e.active].Name
	}

	next := sortByOrder(snap.Windows, e.order)
	changed := viewChanged(e.view, next)
	e.view = next

	clamped, moved := clampIndex(e.active, len(e.view))
	e.active = clamped

	// The timer tracks the active tab's identity, not its index: a snapshot
	// can swap which window occupies the active slot without moving the
	// index, and that still changes the active tab.
	name := ""
	if e.active >= 0 && e.active < len(e.view) {
		name = e.view[e.active].Name
	}
	var effects []Effect
	if moved || name != prevName {
		effects = e.resyncTimer()
	}
	return changed, effects, nil
}

// sortByOrder ranks windows by their position in the persisted name order.
// Unseen names sort after every ranked name; ties break alphabetically by
// ordinal comparison. The sort is stable so equal-name collisions keep
// their enumeration order.
func sortByOrder(windows []Window, order []string) []Window {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}
	sorted := append([]Window(nil), windows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iOK := rank[sorted[i].Name]
		rj, jOK := rank[sorted[j].Name]
		switch {
		case iOK && jOK:
			if ri != rj {
				return ri < rj
			}
			return sorted[i].Name < sorted[j].Name
		case iOK:
			return true
		case jOK:
			return false
		default:
			return sorted[i].Name < sorted[j].Name
		}
	})
	return sorted
}

func viewChanged(prev, next []Window) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if prev[i].Name != next[i].Name {
			return true
		}
	}
	return false
}

// clampIndex keeps an active index inside the view bounds. An empty view
// yields -1.
func clampIndex(active, length int) (int, bool) {
	if length == 0 {
		if active == -1 {
			return -1, false
		}
		return -1, active != -1
	}
	if active < 0 {
		return 0, true
	}
	if active >= length {
		return length - 1, true
	}
	return active, false
}

// Reorder moves the tab at from to position to, persists the new name
// sequence, and re-sorts the view against it. This is the only path that
// writes the order store; absent-window entries retained from earlier
// sessions are replaced by the explicit new sequence.
func (e *Engine) Reorder(from, to int) ([]Effect, error) {
	if from < 0 || from >= len(e.view) || to < 0 || to >= len(e.view) || from == to {
		return nil, nil
	}
	prevActive := e.active

	next := append([]Window(nil), e.view...)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]Window{moved}, next[to:]...)...)

	names := make([]string, len(next))
	for i, w := range next {
		names[i] = w.Name
	}
	if err := e.orders.Save(e.editorID, names); err != nil {
		return nil, fmt.Errorf("save tab order: %w", err)
	}
	e.order = names
	e.view = next

	// The active tab follows the window it pointed at, not its index.
	switch {
	case prevActive == from:
		e.active = to
	case prevActive > from && prevActive <= to:
		e.active = prevActive - 1
	case prevActive < from && prevActive >= to:
		e.active = prevActive + 1
	}
	if e.active != prevActive {
		return e.resyncTimer(), nil
	}
	return nil, nil
}
