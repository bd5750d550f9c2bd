package engine

// ClickTab handles a user tab selection. Clicking a tab whose project is
// raw-waiting acknowledges the badge; clicking a tab other than the active
// one additionally adopts the index, starts the focus-echo debounce window
// and fires an async focus command whose result is never awaited.
func (e *Engine) ClickTab(i int) []Effect {
	if i < 0 || i >= len(e.view) {
		return nil
	}
	var effects []Effect
	dismissed := e.dismissName(e.view[i].Name)

	if i != e.active {
		e.active = i
		e.lastClick = e.now()
		effects = append(effects, FocusWindow{WindowID: e.view[i].ID})
		effects = append(effects, e.resyncTimer()...)
		return effects
	}
	if dismissed {
		effects = append(effects, e.resyncTimer()...)
	}
	return effects
}

// FocusChanged handles an OS focus notification, delivered as a re-queried
// snapshot. Inside the debounce window the event is the echo of our own
// focus call and is dropped wholesale. Outside it, the frontmost window is
// mapped through the same order-based sort as the view and adopted.
func (e *Engine) FocusChanged(snap Snapshot, err error) ([]Effect, error) {
	if err != nil {
		return nil, err
	}
	if e.debouncing() {
		return nil, nil
	}
	e.editorFrontmost = snap.IsActive
	if snap.ActiveIndex < 0 || snap.ActiveIndex >= len(snap.Windows) {
		return nil, nil
	}
	front := snap.Windows[snap.ActiveIndex]
	for i, w := range e.view {
		if w.Name != front.Name {
			continue
		}
		if i == e.active {
			return nil, nil
		}
		e.active = i
		return e.resyncTimer(), nil
	}
	return nil, nil
}

func (e *Engine) debouncing() bool {
	if e.lastClick.IsZero() {
		return false
	}
	return e.now().Sub(e.lastClick) < e.debounce
}
