package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"treedata/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true) // Sky Blue/Cyan
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	adviceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // Orange

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

const helpText = `Commands

  T        Jump to the top of the tree
  L        Leaves (nodes without children)
  N        Lowest nodes (deepest level)
  F        Find nodes by name
  P        Find nodes by declared parent name
  enter    Children of the selected node
  ↑/↓ j/k  Move the selection
  pgup/dn  Scroll the results
  ?        This help
  E, q     Exit

Press any key to close.`

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Loading tree... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to exit.\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(m.renderTree(interiorHeight, leftWidth))

	m.ResultViewport.Width = rightWidth
	m.ResultViewport.Height = interiorHeight - 2
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.renderResultsHeader() + "\n\n" + m.ResultViewport.View())

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("treedata %s  %s", model.Version, m.Result.Source)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderTree draws the indented tree, windowed around the selection.
func (m AppModel) renderTree(interiorHeight, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Tree (%d nodes, max depth %d)", len(m.Result.Tree), m.Result.MaxDepth)))
	b.WriteString("\n\n")

	rows := m.Result.Tree
	visible := interiorHeight - 2
	if visible < 1 {
		visible = 1
	}
	start, end := 0, len(rows)
	if len(rows) > visible {
		if m.SelectedIdx >= visible/2 {
			start = m.SelectedIdx - visible/2
		}
		if start+visible > len(rows) {
			start = len(rows) - visible
		}
		end = start + visible
	}

	for i := start; i < end; i++ {
		line := truncate(rows[i].Indent+rows[i].Name, width-2)

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case m.MatchLookup[i+1]: // rows are in load order, so row i is line i+1
			style = matchStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// truncate shortens s to at most width terminal cells, ending in "...".
func truncate(s string, width int) string {
	if width < 4 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func (m AppModel) renderResultsHeader() string {
	title := m.Query.Title()
	if m.QueryArg != "" {
		title += fmt.Sprintf(" %q", m.QueryArg)
	}
	return headingStyle.Render(fmt.Sprintf("%s (%d)", title, len(m.Matches)))
}

func (m AppModel) renderMatches() string {
	if len(m.Matches) == 0 {
		return dimStyle.Render("NONE")
	}
	var b strings.Builder
	for _, e := range m.Matches {
		fmt.Fprintf(&b, "%s %s|%s", model.Icon(e), e.ParentName, e.Name)
		b.WriteString(dimStyle.Render(fmt.Sprintf("  depth %d, line %d", e.Depth, e.Line)))
		if !e.Resolved && !e.Root {
			b.WriteString(adviceStyle.Render("  (parent not found)"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) renderFooter() string {
	if m.InputMode {
		label := "Find node"
		if m.InputFor == QueryParent {
			label = "Find by parent"
		}
		return fmt.Sprintf("%s: %s  (enter to search, esc to cancel)", label, m.InputBuffer.View())
	}
	return dimStyle.Render("T tree • L leaves • N lowest • F find • P parent • enter children • ? help • E exit")
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return helpText
	}

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(helpText)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return LoadCmd(m.Index)
}
