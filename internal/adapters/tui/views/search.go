package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/styles"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel searches step labels across every indexed task
type SearchModel struct {
	ViewState
	index     ports.TaskIndex
	input     textinput.Model
	results   []domain.NodeHit
	cursor    int
	searching bool
}

// NewSearchModel creates a new search view model
func NewSearchModel(index ports.TaskIndex) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search steps..."
	input.Focus()

	return &SearchModel{
		index: index,
		input: input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.searching = false
	m.input.Focus()
}

// SearchSelectMsg is sent when a search result is selected. The node id
// has already been copied to the clipboard.
type SearchSelectMsg struct {
	Hit domain.NodeHit
}

// SearchCancelMsg is sent when the search view is dismissed
type SearchCancelMsg struct{}

type searchResultsMsg struct {
	results []domain.NodeHit
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		m.results = msg.results
		m.cursor = 0
		m.searching = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg { return SearchCancelMsg{} }

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				hit := m.results[m.cursor]
				// Copy the step id for pasting into notes or scripts
				clipboard.WriteAll(hit.NodeID)
				return m, func() tea.Msg {
					return SearchSelectMsg{Hit: hit}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search on input change
	query := m.input.Value()
	if len(query) >= 2 {
		m.searching = true
		return m, tea.Batch(cmd, m.search(query))
	} else if len(query) == 0 {
		m.results = nil
	}

	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		if m.index == nil {
			return searchResultsMsg{results: nil}
		}
		results, err := m.index.SearchNodes(query)
		if err != nil {
			return searchResultsMsg{results: nil}
		}
		return searchResultsMsg{results: results}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Search steps"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if m.searching {
			b.WriteString(RenderMuted("Searching..."))
		} else if len(m.input.Value()) >= 2 {
			b.WriteString(RenderMuted("No matching steps"))
		} else {
			b.WriteString(RenderMuted("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		maxResults := 10
		if len(m.results) < maxResults {
			maxResults = len(m.results)
		}

		for i := 0; i < maxResults; i++ {
			b.WriteString(m.renderResult(m.results[i], i == m.cursor))
			b.WriteString("\n")
		}

		if len(m.results) > 10 {
			b.WriteString(RenderMuted(fmt.Sprintf("... and %d more", len(m.results)-10)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(hit domain.NodeHit, selected bool) string {
	text := fmt.Sprintf("%s %s  %s",
		StatusGlyph(hit.Status),
		hit.Label,
		styles.MutedText.Render("in "+hit.TaskTitle),
	)
	if selected {
		return styles.RowSelected.Render(fmt.Sprintf("● %s  in %s", hit.Label, hit.TaskTitle))
	}
	return text
}
