package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/styles"
)

// StepFormModel collects a step label, either for a new step or to rename
// an existing one.
type StepFormModel struct {
	ViewState
	form   *InputForm
	nodeID string // empty when adding
}

// NewStepFormModel creates a new step form model
func NewStepFormModel() *StepFormModel {
	return &StepFormModel{}
}

// SetTarget prepares the form. An empty nodeID means a new step; otherwise
// the form edits that step's label, starting from initial.
func (m *StepFormModel) SetTarget(nodeID, initial string) {
	m.nodeID = nodeID
	m.form = NewInputForm(
		NewInputField("Step label", "e.g. Write the migration", 120),
	)
	if initial != "" {
		m.form.SetValue(0, initial)
	}
	m.ClearMessage()
}

// Init initializes the step form
func (m *StepFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// StepFormSubmitMsg carries the submitted label back to the app
type StepFormSubmitMsg struct {
	NodeID string // empty means add a new step
	Label  string
}

// StepFormCancelMsg is sent when the form is dismissed
type StepFormCancelMsg struct{}

// Update handles messages for the step form
func (m *StepFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return StepFormCancelMsg{} }

		case key.Matches(msg, m.form.Keys.Submit):
			label := m.form.Value(0)
			if label == "" {
				m.SetMessage("Label is required", true)
				return m, nil
			}
			nodeID := m.nodeID
			return m, func() tea.Msg {
				return StepFormSubmitMsg{NodeID: nodeID, Label: label}
			}
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the step form
func (m *StepFormModel) View() string {
	var b strings.Builder

	if m.nodeID == "" {
		b.WriteString(RenderTitle("Add step"))
	} else {
		b.WriteString(RenderTitle("Rename step"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	if m.nodeID == "" {
		b.WriteString(m.form.RenderHelp("add"))
	} else {
		b.WriteString(m.form.RenderHelp("rename"))
	}

	return styles.App.Render(b.String())
}
