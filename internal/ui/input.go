package ui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mtakeda/editor-tab-sync/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filtering {
		return m.handleFilterKey(key)
	}

	switch key.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(key.String()[0] - '1')
		return m.clickTab(index)
	case "left":
		return m.clickTab(m.eng.ActiveIndex() - 1)
	case "right":
		return m.clickTab(m.eng.ActiveIndex() + 1)
	case "shift+left":
		return m.reorder(m.eng.ActiveIndex(), m.eng.ActiveIndex()-1)
	case "shift+right":
		return m.reorder(m.eng.ActiveIndex(), m.eng.ActiveIndex()+1)
	case "d":
		if active := m.eng.ActiveIndex(); active >= 0 && active < len(m.tabs) {
			events.Status.Dismiss(m.tabs[active].Name, "key")
		}
		cmd := m.runEffects(m.eng.DismissActive())
		m.refresh()
		return cmd
	case "n":
		return m.openWindowCmd()
	case "x":
		active := m.eng.ActiveIndex()
		if active < 0 || active >= len(m.tabs) {
			return nil
		}
		tab := m.tabs[active]
		return m.closeWindowCmd(tab.Path, tab.Name)
	case "l":
		m.showDetails = !m.showDetails
		return nil
	case "/":
		m.filtering = true
		m.filterIndex = 0
		m.filterInput.SetValue("")
		return m.filterInput.Focus()
	}
	return nil
}

func (m *Model) clickTab(index int) tea.Cmd {
	if index < 0 || index >= len(m.tabs) {
		return nil
	}
	events.Tab.Click(index, m.tabs[index].Name)
	cmd := m.runEffects(m.eng.ClickTab(index))
	m.refresh()
	return cmd
}

func (m *Model) reorder(from, to int) tea.Cmd {
	if from < 0 || to < 0 || from >= len(m.tabs) || to >= len(m.tabs) {
		return nil
	}
	events.Tab.Reorder(from, to)
	effects, err := m.eng.Reorder(from, to)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.setInfo(fmt.Sprintf("moved %s", m.tabs[from].Name))
	cmd := m.runEffects(effects)
	m.refresh()
	return cmd
}

func (m *Model) handleFilterKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc", "ctrl+c":
		m.filtering = false
		m.filterInput.Blur()
		return nil
	case "enter":
		matches := m.filterMatches()
		m.filtering = false
		m.filterInput.Blur()
		if m.filterIndex >= 0 && m.filterIndex < len(matches) {
			return m.clickTab(matches[m.filterIndex])
		}
		return nil
	case "up":
		if m.filterIndex > 0 {
			m.filterIndex--
		}
		return nil
	case "down":
		if m.filterIndex < len(m.filterMatches())-1 {
			m.filterIndex++
		}
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(key)
	m.filterIndex = 0
	return cmd
}

// filterMatches returns tab indices whose names fuzzy-match the filter
// text, best matches first. An empty filter matches every tab in order.
func (m *Model) filterMatches() []int {
	query := m.filterInput.Value()
	if query == "" {
		indices := make([]int, len(m.tabs))
		for i := range m.tabs {
			indices[i] = i
		}
		return indices
	}
	names := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		names[i] = tab.Name
	}
	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)
	indices := make([]int, 0, len(ranks))
	for _, rank := range ranks {
		indices = append(indices, rank.OriginalIndex)
	}
	return indices
}
