package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/mtakeda/editor-tab-sync/internal/engine"
	"github.com/mtakeda/editor-tab-sync/internal/format/table"
)

const (
	badgeWaiting    = "●"
	badgeGenerating = "✱"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	if m.filtering {
		b.WriteString("\n")
		b.WriteString(m.filterView())
	} else if m.showDetails {
		b.WriteString("\n")
		b.WriteString(m.detailsView())
	}
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.footerLine())
	}
	return b.String()
}

func (m *Model) headerLine() string {
	title := m.editorName
	if title == "" {
		title = "editor"
	}
	header := styles.Header.Render(title)
	if m.errMsg != "" {
		header += "  " + styles.Error.Render(m.errMsg)
	} else if m.infoMsg != "" {
		header += "  " + styles.Info.Render(m.infoMsg)
	}
	return m.clip(header)
}

func (m *Model) tabBar() string {
	if len(m.tabs) == 0 {
		return styles.Info.Render("(no windows)")
	}
	active := m.eng.ActiveIndex()
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		parts[i] = m.renderTab(i, tab, i == active)
	}
	return m.clip(strings.Join(parts, " "))
}

func (m *Model) renderTab(index int, tab engine.Tab, active bool) string {
	label := fmt.Sprintf("%d:%s", index+1, tab.Name)
	if tab.Branch != "" {
		label += styles.Branch.Render(" " + tab.Branch)
	}
	switch tab.Status {
	case engine.StatusWaiting:
		label += " " + styles.BadgeWaiting.Render(badgeWaiting)
	case engine.StatusGenerating:
		label += " " + styles.BadgeGenerate.Render(badgeGenerating)
	}
	if active {
		return styles.ActiveTab.Render(label)
	}
	return styles.Tab.Render(label)
}

func (m *Model) detailsView() string {
	rows := make([][]string, 0, len(m.tabs)+1)
	rows = append(rows, []string{"NAME", "BRANCH", "STATUS", "TITLE"})
	for _, tab := range m.tabs {
		status := string(tab.Status)
		if status == "" {
			status = "-"
		}
		branch := tab.Branch
		if branch == "" {
			branch = "-"
		}
		rows = append(rows, []string{tab.Name, branch, status, tab.Path})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft})
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, len(lines))
	out[0] = styles.DetailHeading.Render(m.clip(lines[0]))
	for i := 1; i < len(lines); i++ {
		out[i] = styles.DetailPath.Render(m.clip(lines[i]))
	}
	return strings.Join(out, "\n")
}

func (m *Model) filterView() string {
	var b strings.Builder
	b.WriteString(styles.FilterPrompt.Render("/"))
	b.WriteString(styles.Filter.Render(m.filterInput.Value()))
	matches := m.filterMatches()
	if len(matches) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Info.Render(fmt.Sprintf("No matches for %q", m.filterInput.Value())))
		return b.String()
	}
	for i, tabIndex := range matches {
		b.WriteString("\n")
		line := m.tabs[tabIndex].Name
		if i == m.filterIndex {
			b.WriteString(styles.SelectedItem.Render(m.clip("> " + line)))
		} else {
			b.WriteString(styles.Item.Render(m.clip("  " + line)))
		}
	}
	return b.String()
}

func (m *Model) footerLine() string {
	hints := []string{
		"1-9/←→ switch",
		"shift+←→ move",
		"d dismiss",
		"n new",
		"x close",
		"l details",
		"/ filter",
		"q quit",
	}
	return m.clip(styles.Footer.Render(strings.Join(hints, "  ")))
}

// clip truncates a rendered line to the terminal width, ANSI-aware.
func (m *Model) clip(line string) string {
	if m.width <= 0 {
		return line
	}
	return truncate.String(line, uint(m.width))
}
