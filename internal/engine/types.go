package engine

import (
	"strings"
	"time"
)

// Status is a project's last reported session state.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusGenerating Status = "generating"
)

// ParseStatus validates a wire status value. Unrecognised values are
// reported so callers can drop the entry and keep the rest of the map.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusWaiting, StatusGenerating:
		return Status(raw), true
	}
	return "", false
}

// Window describes one externally-managed editor window. The id is an
// OS-scoped handle valid only for that window's lifetime; name is the only
// identity that survives re-enumeration.
type Window struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	Branch string `json:"branch,omitempty"`
}

// Snapshot is a point-in-time view of the editor's open windows.
// ActiveIndex is -1 when no window is frontmost.
type Snapshot struct {
	IsActive    bool     `json:"is_active"`
	Windows     []Window `json:"windows"`
	ActiveIndex int      `json:"active_index"`
}

// Tab is a rendered window plus its visible status badge. Status is empty
// when the project has no badge (none reported, dismissed, or held back
// during a reset).
type Tab struct {
	Window
	Status Status
}

// Default delays. Empirical values carried over from the behaviour this
// program replicates; tunable through config.
const (
	DefaultClickDebounce    = 200 * time.Millisecond
	DefaultResetDelay       = 150 * time.Millisecond
	DefaultAutoDismissDelay = 15 * time.Second
)

// TimerKind distinguishes the engine's two scheduled callbacks.
type TimerKind int

const (
	TimerAutoDismiss TimerKind = iota
	TimerResetFlush
)

// Effect is an outbound side effect requested by the engine. The caller
// executes effects after the triggering event has been fully processed;
// focus and notification effects are fire-and-forget.
type Effect interface{ effect() }

// FocusWindow asks the OS integration to raise a window. Failures are
// swallowed by the dispatch layer.
type FocusWindow struct {
	WindowID int
}

// RequestNotification asks for a desktop notification bound to a project.
type RequestNotification struct {
	Title string
	Body  string
	Path  string
}

// ArmTimer schedules a callback. The generation token lets the engine
// ignore fires from timers that have since been superseded; arming a new
// timer is the only cancellation mechanism.
type ArmTimer struct {
	Kind       TimerKind
	Path       string
	Generation uint64
	Delay      time.Duration
}

// TimerFired re-enters the engine when a scheduled callback comes due.
type TimerFired struct {
	Kind       TimerKind
	Path       string
	Generation uint64
}

func (FocusWindow) effect()         {}
func (RequestNotification) effect() {}
func (ArmTimer) effect()            {}

// OrderStore persists the user's tab order per editor identity.
type OrderStore interface {
	Load(editorID string) ([]string, error)
	Save(editorID string, names []string) error
}

// LastSegment projects a full project path onto the window-name space used
// for matching. Two open projects sharing a directory basename collide
// here; the ambiguity is inherited from title-based matching and is not
// resolved.
func LastSegment(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
