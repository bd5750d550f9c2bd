package engine

import (
	"testing"
	"time"
)

func TestClickSetsActiveAndFiresFocus(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})

	effects := eng.ClickTab(1)
	if eng.ActiveIndex() != 1 {
		t.Fatalf("expected active 1, got %d", eng.ActiveIndex())
	}
	var focus *FocusWindow
	for _, effect := range effects {
		if f, ok := effect.(FocusWindow); ok {
			focus = &f
		}
	}
	if focus == nil {
		t.Fatalf("expected a focus effect, got %#v", effects)
	}
	if focus.WindowID != 101 {
		t.Fatalf("expected focus for window 101, got %d", focus.WindowID)
	}
}

func TestClickOnActiveTabDoesNotRefocus(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})
	eng.ClickTab(1)

	effects := eng.ClickTab(1)
	for _, effect := range effects {
		if _, ok := effect.(FocusWindow); ok {
			t.Fatalf("clicking the active tab must not re-focus")
		}
	}
	if eng.ActiveIndex() != 1 {
		t.Fatalf("active index moved unexpectedly: %d", eng.ActiveIndex())
	}
}

func TestClickOutOfRangeIgnored(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha"), ActiveIndex: -1})

	if effects := eng.ClickTab(5); effects != nil {
		t.Fatalf("expected nil effects for out-of-range click, got %#v", effects)
	}
	if effects := eng.ClickTab(-1); effects != nil {
		t.Fatalf("expected nil effects for negative click, got %#v", effects)
	}
}

func TestFocusEchoInsideDebounceIgnored(t *testing.T) {
	clock := newFakeClock()
	eng := newTestEngine(t, newFakeStore(), clock)
	snap := Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1}
	mustSnapshot(t, eng, snap)

	eng.ClickTab(1)
	clock.Advance(100 * time.Millisecond)

	// The OS echoes the focus our own command caused; frontmost still
	// reads as alpha because the echo raced the focus call.
	echo := Snapshot{IsActive: true, Windows: windows("alpha", "beta"), ActiveIndex: 0}
	if _, err := eng.FocusChanged(echo, nil); err != nil {
		t.Fatalf("FocusChanged returned error: %v", err)
	}
	if eng.ActiveIndex() != 1 {
		t.Fatalf("debounced echo must not move the active index, got %d", eng.ActiveIndex())
	}
}

func TestFocusChangeOutsideDebounceAdopted(t *testing.T) {
	clock := newFakeClock()
	eng := newTestEngine(t, newFakeStore(), clock)
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})

	eng.ClickTab(1)
	clock.Advance(250 * time.Millisecond)

	change := Snapshot{IsActive: true, Windows: windows("alpha", "beta"), ActiveIndex: 0}
	if _, err := eng.FocusChanged(change, nil); err != nil {
		t.Fatalf("FocusChanged returned error: %v", err)
	}
	if eng.ActiveIndex() != 0 {
		t.Fatalf("genuine focus change must be adopted, got %d", eng.ActiveIndex())
	}
}

func TestFocusChangeMapsThroughPersistedOrder(t *testing.T) {
	eng := newTestEngine(t, newFakeStore("beta", "alpha"), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha", "beta"), ActiveIndex: -1})

	// View is [beta alpha]; the OS says alpha (snapshot index 0) is
	// frontmost, which is view index 1.
	change := Snapshot{IsActive: true, Windows: windows("alpha", "beta"), ActiveIndex: 0}
	if _, err := eng.FocusChanged(change, nil); err != nil {
		t.Fatalf("FocusChanged returned error: %v", err)
	}
	if eng.ActiveIndex() != 1 {
		t.Fatalf("expected frontmost window mapped to view index 1, got %d", eng.ActiveIndex())
	}
}

func TestFocusChangeForUnknownWindowIgnored(t *testing.T) {
	eng := newTestEngine(t, newFakeStore(), newFakeClock())
	mustSnapshot(t, eng, Snapshot{Windows: windows("alpha"), ActiveIndex: -1})
	eng.ClickTab(0)

	change := Snapshot{IsActive: true, Windows: windows("mystery"), ActiveIndex: 0}
	if _, err := eng.FocusChanged(change, nil); err != nil {
		t.Fatalf("FocusChanged returned error: %v", err)
	}
	if eng.ActiveIndex() != 0 {
		t.Fatalf("unknown frontmost window must not move the index, got %d", eng.ActiveIndex())
	}
}
