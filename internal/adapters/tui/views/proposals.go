package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/styles"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// ProposalsState represents the state of the proposals view
type ProposalsState int

const (
	ProposalsInput ProposalsState = iota
	ProposalsLoading
	ProposalsReview
	ProposalsError
)

// ProposalsKeyMap defines key bindings for the proposals view
type ProposalsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Apply    key.Binding
	Cancel   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

var ProposalsKeys = ProposalsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "y"),
		key.WithHelp("space", "keep/skip"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply kept"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
}

// proposalRow pairs a proposal with its review decision
type proposalRow struct {
	proposal domain.Proposal
	keep     bool
}

// ProposalsModel drives the plan generation flow: request sub-step
// proposals (or a full regeneration) from the plan service, review them,
// and hand the kept ones back to the app.
type ProposalsModel struct {
	ViewState
	planner ports.PlanService

	state      ProposalsState
	regenerate bool
	task       *domain.Task // snapshot of the open task, for prompts

	input     textinput.Model
	spinner   spinner.Model
	rows      []proposalRow
	paginator *Paginator
	err       error
}

// NewProposalsModel creates a new proposals view model
func NewProposalsModel(planner ports.PlanService) *ProposalsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	input := textinput.New()
	input.Placeholder = "How should the plan change?"
	input.Prompt = "Instructions: "

	return &ProposalsModel{
		planner:   planner,
		spinner:   s,
		input:     input,
		paginator: NewPaginator(10),
	}
}

// SetSource prepares the view for the open task. With regenerate set, the
// view first asks for instructions; otherwise it fetches proposals
// immediately.
func (m *ProposalsModel) SetSource(task *domain.Task, regenerate bool) {
	m.task = task
	m.regenerate = regenerate
	m.rows = nil
	m.err = nil
	m.paginator.Reset()
	m.ClearMessage()

	if regenerate {
		m.state = ProposalsInput
		m.input.SetValue("")
		m.input.Focus()
	} else {
		m.state = ProposalsLoading
	}
}

// Init initializes the proposals view
func (m *ProposalsModel) Init() tea.Cmd {
	if m.state == ProposalsInput {
		return textinput.Blink
	}
	return tea.Batch(m.spinner.Tick, m.fetchProposals())
}

const defaultProposalCount = 5

func (m *ProposalsModel) fetchProposals() tea.Cmd {
	task := m.task
	return func() tea.Msg {
		if task == nil {
			return proposalsErrMsg{Err: fmt.Errorf("no task open")}
		}
		if m.planner == nil || !m.planner.IsAvailable() {
			return proposalsErrMsg{Err: fmt.Errorf("plan service not available")}
		}
		proposals, err := m.planner.ProposeSubSteps(task, defaultProposalCount)
		if err != nil {
			return proposalsErrMsg{Err: err}
		}
		return proposalsFetchedMsg{Proposals: proposals}
	}
}

func (m *ProposalsModel) fetchRegenerated(instructions string) tea.Cmd {
	task := m.task
	return func() tea.Msg {
		if m.planner == nil || !m.planner.IsAvailable() {
			return proposalsErrMsg{Err: fmt.Errorf("plan service not available")}
		}
		next, err := m.planner.RegenerateTask(task, instructions)
		if err != nil {
			return proposalsErrMsg{Err: err}
		}
		return TaskRegeneratedMsg{Task: next}
	}
}

type proposalsFetchedMsg struct {
	Proposals []domain.Proposal
}

type proposalsErrMsg struct {
	Err error
}

// ProposalsAcceptedMsg carries the kept proposals back to the app
type ProposalsAcceptedMsg struct {
	Proposals []domain.Proposal
}

// ProposalsCancelMsg is sent when the review is dismissed without applying
type ProposalsCancelMsg struct{}

// TaskRegeneratedMsg carries a regenerated task back to the app
type TaskRegeneratedMsg struct {
	Task *domain.Task
}

// Update handles messages for the proposals view
func (m *ProposalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state == ProposalsLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case proposalsFetchedMsg:
		m.rows = make([]proposalRow, len(msg.Proposals))
		for i, p := range msg.Proposals {
			m.rows[i] = proposalRow{proposal: p, keep: true}
		}
		m.paginator.SetTotal(len(m.rows))
		m.state = ProposalsReview
		return m, nil

	case proposalsErrMsg:
		m.err = msg.Err
		m.state = ProposalsError
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case ProposalsInput:
			return m.updateInput(msg)
		case ProposalsReview:
			return m.updateReview(msg)
		default:
			if key.Matches(msg, ProposalsKeys.Cancel) {
				return m, func() tea.Msg { return ProposalsCancelMsg{} }
			}
			return m, nil
		}
	}

	if m.state == ProposalsInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ProposalsModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return ProposalsCancelMsg{} }
	case "enter":
		instructions := strings.TrimSpace(m.input.Value())
		if instructions == "" {
			m.SetMessage("Instructions are required", true)
			return m, nil
		}
		m.state = ProposalsLoading
		return m, tea.Batch(m.spinner.Tick, m.fetchRegenerated(instructions))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ProposalsModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ProposalsKeys.Cancel):
		return m, func() tea.Msg { return ProposalsCancelMsg{} }

	case key.Matches(msg, ProposalsKeys.Up):
		m.paginator.CursorUp()
		return m, nil

	case key.Matches(msg, ProposalsKeys.Down):
		m.paginator.CursorDown()
		return m, nil

	case key.Matches(msg, ProposalsKeys.NextPage):
		m.paginator.NextPage()
		return m, nil

	case key.Matches(msg, ProposalsKeys.PrevPage):
		m.paginator.PrevPage()
		return m, nil

	case key.Matches(msg, ProposalsKeys.Toggle):
		i := m.paginator.Cursor()
		if i >= 0 && i < len(m.rows) {
			m.rows[i].keep = !m.rows[i].keep
		}
		return m, nil

	case key.Matches(msg, ProposalsKeys.Apply):
		var kept []domain.Proposal
		for _, row := range m.rows {
			if row.keep {
				kept = append(kept, row.proposal)
			}
		}
		return m, func() tea.Msg {
			return ProposalsAcceptedMsg{Proposals: kept}
		}
	}

	return m, nil
}

// View renders the proposals view
func (m *ProposalsModel) View() string {
	var b strings.Builder

	if m.regenerate {
		b.WriteString(RenderTitle("Regenerate plan"))
	} else {
		b.WriteString(RenderTitle("Proposed steps"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case ProposalsInput:
		b.WriteString(styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n\n")
		if m.Message != "" {
			b.WriteString(RenderMessage(m.Message, m.MessageErr))
			b.WriteString("\n\n")
		}
		b.WriteString(RenderHelpLine(ProposalsKeys.Apply, ProposalsKeys.Cancel))

	case ProposalsLoading:
		b.WriteString(m.spinner.View())
		if m.regenerate {
			b.WriteString(" Regenerating the plan...")
		} else {
			b.WriteString(" Asking for sub-step proposals...")
		}
		b.WriteString("\n\n")
		b.WriteString(RenderMuted("This can take a few seconds"))

	case ProposalsError:
		b.WriteString(styles.ErrorMsg.Render("Plan request failed"))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(RenderMuted(m.err.Error()))
			b.WriteString("\n\n")
		}
		b.WriteString(RenderHelpLine(ProposalsKeys.Cancel))

	case ProposalsReview:
		kept := 0
		for _, row := range m.rows {
			if row.keep {
				kept++
			}
		}
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d proposals, %d kept", len(m.rows), kept)))
		b.WriteString("\n\n")

		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.rows[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if m.paginator.TotalPages() > 1 {
			b.WriteString("\n")
			b.WriteString(RenderMuted(fmt.Sprintf("Page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
		}

		b.WriteString("\n")
		b.WriteString(RenderHelpLine(
			ProposalsKeys.Toggle, ProposalsKeys.Apply, ProposalsKeys.Cancel,
		))
	}

	return styles.App.Render(b.String())
}

func (m *ProposalsModel) renderRow(row proposalRow, selected bool) string {
	mark := "[ ]"
	if row.keep {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s", mark, row.proposal.Title)
	if row.proposal.Description != "" {
		line += "  " + styles.MutedText.Render(truncate(row.proposal.Description, 60))
	}
	if selected {
		return styles.RowSelected.Render(fmt.Sprintf("%s %s", mark, row.proposal.Title))
	}
	return line
}
