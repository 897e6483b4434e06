package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/styles"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// PickerKeyMap defines key bindings for the task picker
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	New      key.Binding
	Delete   key.Binding
	Search   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search steps"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PickerMode represents the input state of the picker
type PickerMode int

const (
	PickerBrowse PickerMode = iota
	PickerCreate
	PickerConfirmDelete
)

// PickerModel is the model for the task picker view
type PickerModel struct {
	ViewState
	repo      ports.TaskRepository
	index     ports.TaskIndex
	summaries []domain.TaskSummary
	paginator *Paginator
	mode      PickerMode
	form      *InputForm
	confirm   ConfirmationModel
}

// NewPickerModel creates a new task picker model
func NewPickerModel(repo ports.TaskRepository, index ports.TaskIndex) *PickerModel {
	return &PickerModel{
		repo:      repo,
		index:     index,
		paginator: NewPaginator(12),
		confirm:   NewConfirmationModel(),
	}
}

// Init initializes the picker
func (m *PickerModel) Init() tea.Cmd {
	return m.loadSummaries
}

// Reload re-reads the task list from the repository
func (m *PickerModel) Reload() tea.Cmd {
	return m.loadSummaries
}

func (m *PickerModel) loadSummaries() tea.Msg {
	summaries, err := m.repo.List()
	if err != nil {
		return pickerErrMsg{err}
	}
	return summariesLoadedMsg{summaries}
}

type summariesLoadedMsg struct {
	summaries []domain.TaskSummary
}

type pickerErrMsg struct {
	err error
}

type taskDeletedMsg struct {
	title string
}

type pickerCancelMsg struct{}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case summariesLoadedMsg:
		m.summaries = msg.summaries
		m.paginator.SetTotal(len(m.summaries))
		return m, nil

	case pickerErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case taskDeletedMsg:
		m.SetMessage(fmt.Sprintf("Deleted %q", msg.title), false)
		return m, m.loadSummaries

	case pickerCancelMsg:
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case PickerCreate:
			return m.updateCreate(msg)
		case PickerConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == PickerCreate {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *PickerModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, PickerKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PickerKeys.Up):
		m.paginator.CursorUp()
		return m, nil

	case key.Matches(msg, PickerKeys.Down):
		m.paginator.CursorDown()
		return m, nil

	case key.Matches(msg, PickerKeys.NextPage):
		m.paginator.NextPage()
		return m, nil

	case key.Matches(msg, PickerKeys.PrevPage):
		m.paginator.PrevPage()
		return m, nil

	case key.Matches(msg, PickerKeys.Open):
		if s, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return SwitchToCanvasMsg{TaskID: s.ID}
			}
		}
		return m, nil

	case key.Matches(msg, PickerKeys.New):
		m.mode = PickerCreate
		m.form = NewInputForm(
			NewInputField("Title", "What needs doing?", 120),
			NewInputField("Description", "Optional context", 240),
		)
		m.ClearMessage()
		return m, m.form.Init()

	case key.Matches(msg, PickerKeys.Delete):
		if s, ok := m.selected(); ok {
			m.mode = PickerConfirmDelete
			m.confirm.SetTarget("task", s.ID, s.Title)
		}
		return m, nil

	case key.Matches(msg, PickerKeys.Search):
		return m, func() tea.Msg {
			return SwitchToSearchMsg{}
		}

	case key.Matches(msg, PickerKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	return m, nil
}

func (m *PickerModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Keys.Cancel):
		m.mode = PickerBrowse
		return m, nil

	case key.Matches(msg, m.form.Keys.Submit):
		title := m.form.Value(0)
		if title == "" {
			m.SetMessage("Title is required", true)
			return m, nil
		}
		description := m.form.Value(1)
		m.mode = PickerBrowse
		return m, m.createTask(title, description)
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *PickerModel) createTask(title, description string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.repo.Create(title, description)
		if err != nil {
			return pickerErrMsg{fmt.Errorf("failed to create task: %w", err)}
		}
		return SwitchToCanvasMsg{TaskID: task.ID}
	}
}

func (m *PickerModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled, cmd := m.confirm.HandleKeyMsg(msg,
		func() tea.Msg {
			id, title := m.confirm.TargetID, m.confirm.TargetName
			if err := m.repo.Delete(id); err != nil {
				return pickerErrMsg{fmt.Errorf("failed to delete task: %w", err)}
			}
			if m.index != nil {
				// Stale index rows are worse than a missed sync.
				_ = m.index.RemoveTask(id)
			}
			return taskDeletedMsg{title: title}
		},
		func() tea.Msg {
			return pickerCancelMsg{}
		},
	)
	if handled {
		m.mode = PickerBrowse
		if cmd != nil {
			return m, cmd
		}
	}
	return m, nil
}

func (m *PickerModel) selected() (domain.TaskSummary, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.summaries) {
		return domain.TaskSummary{}, false
	}
	return m.summaries[i], true
}

// View renders the picker
func (m *PickerModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("flowboard"))
	b.WriteString("\n\n")

	switch m.mode {
	case PickerCreate:
		b.WriteString(styles.Subtitle.Render("New task"))
		b.WriteString("\n\n")
		b.WriteString(m.form.RenderField(0))
		b.WriteString("\n\n")
		b.WriteString(m.form.RenderField(1))
		b.WriteString("\n\n")
		b.WriteString(m.form.RenderHelp("create"))
		return styles.App.Render(b.String())

	case PickerConfirmDelete:
		b.WriteString(m.confirm.RenderTargetInfo("Delete"))
		b.WriteString("\n\n")
		b.WriteString(RenderConfirmPrompt("Delete this task and all its steps?"))
		return styles.App.Render(b.String())
	}

	if len(m.summaries) == 0 {
		b.WriteString(RenderMuted("No tasks yet. Press n to create one."))
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderSummary(m.summaries[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if m.paginator.TotalPages() > 1 {
			b.WriteString("\n")
			b.WriteString(RenderMuted(fmt.Sprintf("Page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
		}
	}

	b.WriteString("\n\n")
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderHelpLine(
		PickerKeys.Open, PickerKeys.New, PickerKeys.Delete,
		PickerKeys.Search, PickerKeys.Help, PickerKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *PickerModel) renderSummary(s domain.TaskSummary, selected bool) string {
	detail := fmt.Sprintf("%d steps · %s", s.Steps, s.UpdatedAt.Format("2006-01-02"))
	if selected {
		return styles.RowSelected.Render(fmt.Sprintf("▸ %s  %s", s.Title, detail))
	}
	return fmt.Sprintf("  %s  %s", s.Title, styles.MutedText.Render(detail))
}
