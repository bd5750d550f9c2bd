package engine

import (
	"testing"
	"time"
)

func TestAutoDismissArmsForActiveWaitingTab(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha"), ActiveIndex: 0})

	effects := eng.ApplyStatuses(map[string]string{alphaPath: "waiting"})
	armed := armTimers(effects, TimerAutoDismiss)
	if len(armed) != 1 {
		t.Fatalf("expected one auto-dismiss timer, got %d", len(armed))
	}
	if armed[0].Path != alphaPath {
		t.Fatalf("timer armed for wrong path: %q", armed[0].Path)
	}
	if armed[0].Delay != DefaultAutoDismissDelay {
		t.Fatalf("unexpected delay %v", armed[0].Delay)
	}
}

func TestAutoDismissFireDismissesPath(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha"), ActiveIndex: 0})

	armed := armTimers(eng.ApplyStatuses(map[string]string{alphaPath: "waiting"}), TimerAutoDismiss)
	eng.HandleTimer(TimerFired{Kind: TimerAutoDismiss, Path: armed[0].Path, Generation: armed[0].Generation})

	if !eng.Dismissed(alphaPath) {
		t.Fatalf("auto-dismiss fire must dismiss the armed path")
	}
	if got := badge(t, eng, "alpha"); got != "" {
		t.Fatalf("badge must be hidden after auto-dismiss, got %q", got)
	}
}

func TestStaleAutoDismissFireIsNoOp(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: 0})

	stale := armTimers(eng.ApplyStatuses(map[string]string{alphaPath: "waiting"}), TimerAutoDismiss)
	if len(stale) != 1 {
		t.Fatalf("expected an armed timer, got %d", len(stale))
	}

	// Switching tabs re-arms; the old generation is now invalid.
	eng.ClickTab(1)
	eng.HandleTimer(TimerFired{Kind: TimerAutoDismiss, Path: stale[0].Path, Generation: stale[0].Generation})
	if eng.Dismissed(alphaPath) {
		t.Fatalf("stale timer fire must not dismiss anything")
	}
}

func TestNoAutoDismissWhenActiveTabNotWaiting(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})
	eng.ClickTab(1)

	effects := eng.ApplyStatuses(map[string]string{alphaPath: "waiting"})
	if armed := armTimers(effects, TimerAutoDismiss); len(armed) != 0 {
		t.Fatalf("waiting on a background tab must not arm auto-dismiss, got %d", len(armed))
	}
}

func TestSwitchingOntoWaitingTabArmsTimer(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})
	eng.ClickTab(1)
	eng.ApplyStatuses(map[string]string{alphaPath: "waiting"})

	effects := eng.ClickTab(0)
	armed := armTimers(effects, TimerAutoDismiss)
	// The click itself acknowledges the badge, so nothing re-arms.
	if len(armed) != 0 {
		t.Fatalf("click dismisses the badge, no timer expected, got %d", len(armed))
	}
	if !eng.Dismissed(alphaPath) {
		t.Fatalf("clicking the waiting tab must dismiss its path")
	}
}

func TestFocusAdoptionArmsTimerForWaitingTab(t *testing.T) {
	clock := newFakeClock()
	eng := newTestEngine(t, newFakeStore(), clock)
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})
	eng.ClickTab(1)
	clock.Advance(DefaultClickDebounce + 50*time.Millisecond)
	eng.ApplyStatuses(map[string]string{alphaPath: "waiting"})

	// An OS-driven focus change does not acknowledge the badge, so the
	// auto-dismiss timer arms for the newly active waiting tab.
	effects, err := eng.FocusChanged(Snapshot{IsActive: true, Windows: windows("alpha", "beta"), ActiveIndex: 0}, nil)
	if err != nil {
		t.Fatalf("FocusChanged returned error: %v", err)
	}
	armed := armTimers(effects, TimerAutoDismiss)
	if len(armed) != 1 || armed[0].Path != alphaPath {
		t.Fatalf("expected auto-dismiss armed for %q, got %#v", alphaPath, armed)
	}
}

func TestAutoDismissRereadsStateAtFireTime(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha"), ActiveIndex: 0})

	armed := armTimers(eng.ApplyStatuses(map[string]string{alphaPath: "waiting"}), TimerAutoDismiss)

	// The project resumed generating before the timer fired; its raw state
	// at fire time is what counts.
	eng.ApplyStatuses(map[string]string{alphaPath: "generating"})
	eng.HandleTimer(TimerFired{Kind: TimerAutoDismiss, Path: armed[0].Path, Generation: armed[0].Generation})
	if eng.Dismissed(alphaPath) {
		t.Fatalf("non-waiting path must not be dismissed at fire time")
	}
}
