package tui

import (
	"treedata/internal/model"
	"treedata/internal/tree"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Query identifies the command whose result is in the right panel.
type Query byte

const (
	QueryNone   Query = 0
	QueryLeaves Query = 'L'
	QueryLowest Query = 'N'
	QueryFind   Query = 'F'
	QueryParent Query = 'P'
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Index   *tree.Index
	Tree    *tree.View
	Result  model.QueryResult
	Loading bool
	Err     error

	// UI State
	SelectedIdx int // Row of the tree panel under the cursor
	WindowSize  tea.WindowSizeMsg
	ShowHelp    bool

	// Results panel
	Query       Query
	QueryArg    string
	Matches     []model.NodeEntry
	MatchLookup map[int]bool // Input line -> in current result

	// Name prompt for F and P
	InputMode   bool
	InputFor    Query
	InputBuffer textinput.Model

	// Components
	ResultViewport viewport.Model
}

// InitialModel returns the initial state for ix. The index is loaded by Init.
func InitialModel(ix *tree.Index) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Node name..."
	ti.CharLimit = 80
	ti.Width = 30

	return AppModel{
		Index:       ix,
		Loading:     true,
		InputBuffer: ti,
		MatchLookup: map[int]bool{},
	}
}
