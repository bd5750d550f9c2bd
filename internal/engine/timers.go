package engine

// resyncTimer implements the cancel-all-then-arm-at-most-one policy for
// the auto-dismiss timer. Bumping the generation invalidates whatever was
// armed before; a new timer is armed only when the active tab's project is
// raw-waiting and not yet dismissed. Runs on every status update, every
// confirmed active-tab change, and at construction.
func (e *Engine) resyncTimer() []Effect {
	e.dismissGen++
	e.armedPath = ""
	path := e.activeWaitingPath()
	if path == "" {
		return nil
	}
	e.armedPath = path
	return []Effect{ArmTimer{
		Kind:       TimerAutoDismiss,
		Path:       path,
		Generation: e.dismissGen,
		Delay:      e.autoDismiss,
	}}
}

// HandleTimer processes a scheduled callback. Timer fires are independent
// reentrant events: the current raw state is re-read rather than trusted
// from arming time, and fires carrying a stale generation are no-ops.
func (e *Engine) HandleTimer(fired TimerFired) []Effect {
	switch fired.Kind {
	case TimerResetFlush:
		if gen, ok := e.resetHold[fired.Path]; ok && gen == fired.Generation {
			delete(e.resetHold, fired.Path)
		}
		return nil
	case TimerAutoDismiss:
		if fired.Generation != e.dismissGen || fired.Path != e.armedPath {
			return nil
		}
		if fired.Path != e.activeWaitingPath() {
			return nil
		}
		if e.dismissPath(fired.Path) {
			return e.resyncTimer()
		}
		return nil
	}
	return nil
}
