package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	// view to return to when closed
	returnToCanvas bool
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// SetReturn records whether closing help should go back to the canvas
// instead of the picker
func (m *HelpModel) SetReturn(canvas bool) {
	m.returnToCanvas = canvas
}

// HelpClosedMsg is sent when the help view is dismissed
type HelpClosedMsg struct {
	ToCanvas bool
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			toCanvas := m.returnToCanvas
			return m, func() tea.Msg {
				return HelpClosedMsg{ToCanvas: toCanvas}
			}
		}
	}

	return m, nil
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Task picker",
		entries: []helpEntry{
			{"j/k ↑/↓", "move selection"},
			{"enter", "open task"},
			{"n", "new task"},
			{"d", "delete task"},
			{"/", "search steps across tasks"},
			{"q", "quit"},
		},
	},
	{
		title: "Canvas",
		entries: []helpEntry{
			{"tab / shift+tab", "select next / previous step"},
			{"↑↓←→ hjkl", "pan the viewport"},
			{"mouse drag", "move a step"},
			{"a", "add step"},
			{"r", "rename step"},
			{"s", "cycle step status"},
			{"x", "remove step"},
			{"c", "start a connection; c again on a target applies it"},
			{"c on connected target", "remove that edge"},
			{"L", "auto-layout the graph"},
			{"u / ctrl+r", "undo / redo"},
			{"w", "save (also refreshes the search index)"},
			{"P", "propose sub-steps"},
			{"G", "regenerate the whole plan"},
			{"e", "open the step's first attachment"},
			{"q/esc", "back to picker (saves if dirty)"},
		},
	},
	{
		title: "Proposals",
		entries: []helpEntry{
			{"space", "keep or skip a proposal"},
			{"enter", "apply kept proposals"},
			{"esc", "cancel"},
		},
	},
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Help"))
	b.WriteString("\n\n")

	for _, section := range helpSections {
		b.WriteString(styles.InputLabel.Render(section.title))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString("  ")
			b.WriteString(styles.HelpKey.Render(padRight(e.keys, 18)))
			b.WriteString(" ")
			b.WriteString(styles.HelpDesc.Render(e.desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
