// Package ui renders the tab bar and routes terminal input and backend
// events into the sync engine. All engine access happens on the Bubble Tea
// update goroutine, which gives the engine its single-writer guarantee.
package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtakeda/editor-tab-sync/internal/backend"
	"github.com/mtakeda/editor-tab-sync/internal/editor"
	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/logging/events"
	"github.com/mtakeda/editor-tab-sync/internal/notify"
	"github.com/mtakeda/editor-tab-sync/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries presentation settings that are not engine concerns.
type Options struct {
	EditorName string
	ShowFooter bool
}

// Model implements the Bubble Tea model for the tab bar.
type Model struct {
	eng     *engine.Engine
	client  editor.Client
	sender  notify.Sender
	backend *backend.Watcher

	tabs         []engine.Tab
	lastStatuses map[string]string

	width      int
	height     int
	editorName string
	showFooter bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	showDetails bool
	filtering   bool
	filterInput textinput.Model
	filterIndex int

	handlers map[reflect.Type]msgHandler

	// pending holds engine effects produced before the program loop
	// started; Init drains it.
	pending []engine.Effect

	// resolveBranch is swappable for tests.
	resolveBranch func(dir string) string
}

// NewModel initialises the UI around an engine that has already loaded its
// persisted order. The engine's construction effects (the process-start
// timer resync) are executed from Init.
func NewModel(eng *engine.Engine, initial []engine.Effect, client editor.Client, sender notify.Sender, watcher *backend.Watcher, opts Options) *Model {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "filter tabs"
	m := &Model{
		eng:           eng,
		client:        client,
		sender:        sender,
		backend:       watcher,
		editorName:    opts.EditorName,
		showFooter:    opts.ShowFooter,
		filterInput:   input,
		pending:       initial,
		resolveBranch: editor.Branch,
	}
	m.tabs = eng.Tabs()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.runEffects(m.pending); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.pending = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(timerMsg{}):          m.handleTimerMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	timer, ok := msg.(timerMsg)
	if !ok {
		return nil
	}
	events.Timer.Fire(timer.fired.Path, timer.fired.Generation)
	cmd := m.runEffects(m.eng.HandleTimer(timer.fired))
	m.refresh()
	return cmd
}

// refresh re-reads the engine's view after any mutation.
func (m *Model) refresh() {
	m.tabs = m.eng.Tabs()
	if !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = time.Now().Add(3 * time.Second)
}
