package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/logging"
	"github.com/mtakeda/editor-tab-sync/internal/logging/events"
)

const commandTimeout = 5 * time.Second

// timerMsg re-enters the engine when a scheduled callback comes due.
type timerMsg struct {
	fired engine.TimerFired
}

// runEffects turns engine effects into Bubble Tea commands. Focus and
// notification effects are fire-and-forget: their results never feed back
// into the state machine, failures are only logged.
func (m *Model) runEffects(effects []engine.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		switch e := effect.(type) {
		case engine.FocusWindow:
			cmds = append(cmds, m.focusCmd(e.WindowID))
		case engine.RequestNotification:
			m.sender.Send(e.Title, e.Body, e.Path)
		case engine.ArmTimer:
			events.Timer.Arm(e.Path, e.Generation)
			fired := engine.TimerFired{Kind: e.Kind, Path: e.Path, Generation: e.Generation}
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg {
				return timerMsg{fired: fired}
			}))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) focusCmd(windowID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		logging.Error(m.client.Focus(ctx, windowID))
		return nil
	}
}

func (m *Model) openWindowCmd() tea.Cmd {
	events.Tab.Open()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		logging.Error(m.client.OpenWindow(ctx))
		return nil
	}
}

func (m *Model) closeWindowCmd(title, name string) tea.Cmd {
	events.Tab.Close(name)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		logging.Error(m.client.CloseWindow(ctx, title))
		return nil
	}
}
