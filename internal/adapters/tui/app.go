package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/tui/views"
	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPicker ViewState = iota
	ViewCanvas
	ViewStepForm
	ViewProposals
	ViewSearch
	ViewHelp
)

// App is the main TUI application model. It owns the editing session for
// the open task and routes messages to the active view.
type App struct {
	repo    ports.TaskRepository
	planner ports.PlanService
	index   ports.TaskIndex
	editor  ports.EditorOpener

	state     ViewState
	picker    *views.PickerModel
	canvas    *views.CanvasModel
	stepForm  *views.StepFormModel
	proposals *views.ProposalsModel
	search    *views.SearchModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(repo ports.TaskRepository, planner ports.PlanService, index ports.TaskIndex, editor ports.EditorOpener) *App {
	return &App{
		repo:      repo,
		planner:   planner,
		index:     index,
		editor:    editor,
		state:     ViewPicker,
		picker:    views.NewPickerModel(repo, index),
		stepForm:  views.NewStepFormModel(),
		proposals: views.NewProposalsModel(planner),
		search:    views.NewSearchModel(index),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.picker.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(msg.Width, msg.Height)
		if a.canvas != nil {
			a.canvas.SetSize(msg.Width, msg.Height)
		}
		a.stepForm.SetSize(msg.Width, msg.Height)
		a.proposals.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToCanvasMsg:
		return a, a.openTask(msg.TaskID)

	case taskOpenedMsg:
		session := application.NewSession(a.repo, msg.task)
		a.canvas = views.NewCanvasModel(session, a.index, a.editor)
		a.canvas.SetSize(a.width, a.height)
		a.state = ViewCanvas
		return a, a.canvas.Init()

	case taskOpenErrMsg:
		a.picker.SetMessage(msg.err.Error(), true)
		a.state = ViewPicker
		return a, nil

	case views.SwitchToPickerMsg:
		a.state = ViewPicker
		return a, a.picker.Reload()

	case views.SwitchToStepFormMsg:
		if a.canvas == nil {
			return a, nil
		}
		a.state = ViewStepForm
		a.stepForm.SetTarget(msg.NodeID, msg.Initial)
		return a, a.stepForm.Init()

	case views.StepFormSubmitMsg:
		a.state = ViewCanvas
		if a.canvas == nil {
			return a, nil
		}
		session := a.canvas.Session()
		if msg.NodeID == "" {
			node := session.AddNode(msg.Label)
			a.canvas.SelectNode(node.ID)
		} else {
			session.Rename(msg.NodeID, msg.Label)
		}
		return a, nil

	case views.StepFormCancelMsg:
		a.state = ViewCanvas
		return a, nil

	case views.SwitchToProposalsMsg:
		if a.canvas == nil {
			return a, nil
		}
		a.state = ViewProposals
		a.proposals.SetSource(a.canvas.Session().Task(), msg.Regenerate)
		return a, a.proposals.Init()

	case views.ProposalsAcceptedMsg:
		a.state = ViewCanvas
		if a.canvas != nil && len(msg.Proposals) > 0 {
			added := a.canvas.Session().AcceptProposals(msg.Proposals)
			if len(added) > 0 {
				a.canvas.SelectNode(added[0].ID)
			}
		}
		return a, nil

	case views.TaskRegeneratedMsg:
		a.state = ViewCanvas
		if a.canvas != nil && msg.Task != nil {
			a.canvas.Session().ReplaceTask(msg.Task)
			a.canvas.SetMessage("Plan regenerated", false)
		}
		return a, nil

	case views.ProposalsCancelMsg:
		a.state = ViewCanvas
		return a, nil

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SearchSelectMsg:
		// Jump to the hit: in-task selection when it is the open task,
		// otherwise open its task.
		if a.canvas != nil && a.canvas.Session().Task().ID == msg.Hit.TaskID {
			a.canvas.SelectNode(msg.Hit.NodeID)
			a.state = ViewCanvas
			return a, nil
		}
		return a, a.openTask(msg.Hit.TaskID)

	case views.SearchCancelMsg:
		if a.canvas != nil {
			a.state = ViewCanvas
		} else {
			a.state = ViewPicker
		}
		return a, nil

	case views.SwitchToHelpMsg:
		a.help.SetReturn(a.state == ViewCanvas)
		a.state = ViewHelp
		return a, nil

	case views.HelpClosedMsg:
		if msg.ToCanvas && a.canvas != nil {
			a.state = ViewCanvas
		} else {
			a.state = ViewPicker
		}
		return a, nil

	case views.OpenAttachmentMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil && a.canvas != nil {
			a.canvas.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewCanvas:
		if a.canvas != nil {
			_, cmd = a.canvas.Update(msg)
		}
	case ViewStepForm:
		_, cmd = a.stepForm.Update(msg)
	case ViewProposals:
		_, cmd = a.proposals.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type taskOpenedMsg struct {
	task *domain.Task
}

type taskOpenErrMsg struct {
	err error
}

func (a *App) openTask(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := a.repo.Load(id)
		if err != nil {
			return taskOpenErrMsg{err: fmt.Errorf("failed to open task: %w", err)}
		}
		return taskOpenedMsg{task: task}
	}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("no editor configured")}
		}
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCanvas:
		if a.canvas != nil {
			return a.canvas.View()
		}
		return a.picker.View()
	case ViewStepForm:
		return a.stepForm.View()
	case ViewProposals:
		return a.proposals.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.picker.View()
	}
}
