package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtakeda/editor-tab-sync/internal/backend"
	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/logging/events"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	var cmd tea.Cmd
	switch evt.Kind {
	case backend.KindSnapshot:
		snap := evt.Snapshot
		if evt.Err == nil {
			m.enrichBranches(&snap)
		}
		changed, effects, err := m.eng.ApplySnapshot(snap, evt.Err)
		if err != nil {
			// Enumeration failed; the previous view stays frozen.
			events.Tab.SnapshotError(err)
			m.errMsg = err.Error()
			break
		}
		m.errMsg = ""
		events.Tab.Snapshot(len(snap.Windows), changed)
		cmd = m.runEffects(effects)
	case backend.KindFocus:
		before := m.eng.ActiveIndex()
		effects, err := m.eng.FocusChanged(evt.Snapshot, evt.Err)
		if err != nil {
			events.Tab.SnapshotError(err)
			break
		}
		if after := m.eng.ActiveIndex(); after != before {
			events.Tab.FocusAdopted(after, m.tabs[after].Name)
		} else {
			events.Tab.FocusSuppressed()
		}
		cmd = m.runEffects(effects)
	case backend.KindStatus:
		if evt.Err != nil {
			m.errMsg = evt.Err.Error()
			break
		}
		m.errMsg = ""
		m.lastStatuses = evt.Statuses
		events.Status.Update(len(evt.Statuses))
		cmd = m.runEffects(m.eng.ApplyStatuses(evt.Statuses))
	}
	m.refresh()
	return cmd
}

// enrichBranches fills the optional branch field by pairing windows with
// status-map paths through the shared basename projection. Windows without
// a known project path keep an empty branch.
func (m *Model) enrichBranches(snap *engine.Snapshot) {
	if len(m.lastStatuses) == 0 || m.resolveBranch == nil {
		return
	}
	for i, w := range snap.Windows {
		// Basename collisions resolve to the lexicographically first path,
		// matching the badge lookup, so branch and badge agree.
		best := ""
		for path := range m.lastStatuses {
			if engine.LastSegment(path) != w.Name {
				continue
			}
			if best == "" || path < best {
				best = path
			}
		}
		if best != "" {
			snap.Windows[i].Branch = m.resolveBranch(best)
		}
	}
}
