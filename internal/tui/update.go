package tui

import (
	"strings"

	"treedata/internal/model"
	"treedata/internal/report"
	"treedata/internal/tree"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgTreeReady indicates that the index has loaded.
type MsgTreeReady struct{ View *tree.View }

// MsgError indicates the load failed.
type MsgError struct{ Err error }

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.ResultViewport.Width = msg.Width / 2
		m.ResultViewport.Height = msg.Height - 6 // minus title/footer/borders
		return m, nil

	case MsgTreeReady:
		m.Loading = false
		m.Tree = msg.View
		m.Result = model.Analyze(m.Index.Path(), msg.View)
		m.SelectedIdx = 0
		m.runQuery(QueryLeaves, "")
		return m, nil

	case MsgError:
		m.Err = msg.Err
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.runQuery(m.InputFor, strings.TrimSpace(m.InputBuffer.Value()))
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		if m.ShowHelp {
			m.ShowHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "e", "E":
			return m, tea.Quit
		}
		if m.Tree == nil {
			return m, nil
		}

		switch msg.String() {
		case "?":
			m.ShowHelp = true
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Result.Tree)-1 {
				m.SelectedIdx++
			}
		case "t", "T":
			m.SelectedIdx = 0
		case "l", "L":
			m.runQuery(QueryLeaves, "")
		case "n", "N":
			m.runQuery(QueryLowest, "")
		case "f", "F":
			return m, m.startInput(QueryFind)
		case "p", "P":
			return m, m.startInput(QueryParent)
		case "enter":
			// Children of the selected row.
			if m.SelectedIdx < len(m.Result.Tree) {
				m.runQuery(QueryParent, m.Result.Tree[m.SelectedIdx].Name)
			}
		case "pgup", "pgdown":
			m.ResultViewport, cmd = m.ResultViewport.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) startInput(q Query) tea.Cmd {
	m.InputMode = true
	m.InputFor = q
	m.InputBuffer.SetValue("")
	m.InputBuffer.Focus()
	return textinput.Blink
}

func (m *AppModel) runQuery(q Query, arg string) {
	var recs []*tree.Record
	switch q {
	case QueryLeaves:
		recs = m.Tree.Leaves()
	case QueryLowest:
		recs = m.Tree.DeepestNodes()
	case QueryFind:
		recs = m.Tree.FindByName(arg)
	case QueryParent:
		recs = m.Tree.FindByDeclaredParentName(arg)
	}

	m.Query = q
	m.QueryArg = arg
	m.Matches = model.NewNodeEntries(m.Tree, recs)
	m.MatchLookup = make(map[int]bool, len(m.Matches))
	for _, e := range m.Matches {
		m.MatchLookup[e.Line] = true
	}
	m.ResultViewport.SetContent(m.renderMatches())
	m.ResultViewport.GotoTop()
}

// Title returns the report heading for the current query.
func (q Query) Title() string {
	switch q {
	case QueryLeaves:
		return report.TitleLeaves
	case QueryLowest:
		return report.TitleLowest
	case QueryFind:
		return report.TitleFindNode
	case QueryParent:
		return report.TitleFindPar
	}
	return ""
}

// LoadCmd loads the index in the background.
func LoadCmd(ix *tree.Index) tea.Cmd {
	return func() tea.Msg {
		if err := ix.Load(); err != nil {
			return MsgError{Err: err}
		}
		v, err := ix.View()
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTreeReady{View: v}
	}
}
