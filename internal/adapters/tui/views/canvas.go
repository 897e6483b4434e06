package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flowboard/internal/adapters/tui/styles"
	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// Terminal cells are not square, so horizontal and vertical cells map to
// different spans of canvas units. A card is 21 columns by 3 rows.
const (
	UnitsPerCol = domain.CardWidth / 21  // 8 units per column
	UnitsPerRow = domain.CardHeight / 3  // 24 units per row
	panStep     = domain.LayoutHSpacing  // pan per keypress, in units
)

// CanvasKeyMap defines key bindings for the canvas view
type CanvasKeyMap struct {
	NextStep   key.Binding
	PrevStep   key.Binding
	Pan        key.Binding
	AddStep    key.Binding
	Rename     key.Binding
	Status     key.Binding
	Remove     key.Binding
	Connect    key.Binding
	Layout     key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Save       key.Binding
	Propose    key.Binding
	Regenerate key.Binding
	OpenNotes  key.Binding
	Search     key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var CanvasKeys = CanvasKeyMap{
	NextStep: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next step"),
	),
	PrevStep: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev step"),
	),
	Pan: key.NewBinding(
		key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"),
		key.WithHelp("↑↓←→", "pan"),
	),
	AddStep: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add step"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle status"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove step"),
	),
	Connect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "connect"),
	),
	Layout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "auto-layout"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Save: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save"),
	),
	Propose: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "propose steps"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "regenerate"),
	),
	OpenNotes: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open notes"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Back: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// CanvasMode represents the input state of the canvas
type CanvasMode int

const (
	CanvasBrowse CanvasMode = iota
	CanvasConfirmRemove
)

// CanvasModel is the model for the graph canvas view. It renders the open
// task's sub-steps as cards, edges as lines, and routes pointer and key
// input to the editing session.
type CanvasModel struct {
	ViewState
	session *application.Session
	index   ports.TaskIndex
	editor  ports.EditorOpener

	selected string // selected node id; empty when none
	panX     float64
	panY     float64

	drag    *domain.Drag
	dragPos domain.Position // preview position while a drag is live
	connect domain.ConnectSession

	mode    CanvasMode
	confirm ConfirmationModel
}

// NewCanvasModel creates a canvas bound to an editing session
func NewCanvasModel(session *application.Session, index ports.TaskIndex, editor ports.EditorOpener) *CanvasModel {
	m := &CanvasModel{
		session: session,
		index:   index,
		editor:  editor,
		confirm: NewConfirmationModel(),
	}
	if nodes := session.Task().Nodes; len(nodes) > 0 {
		m.selected = nodes[0].ID
	}
	return m
}

// Init initializes the canvas
func (m *CanvasModel) Init() tea.Cmd {
	return nil
}

// Session returns the editing session bound to this canvas
func (m *CanvasModel) Session() *application.Session {
	return m.session
}

// SelectNode moves the selection to the given node id if it exists
func (m *CanvasModel) SelectNode(id string) {
	if m.session.Task().Node(id) != nil {
		m.selected = id
	}
}

// SwitchToStepFormMsg requests the step label form. An empty NodeID means
// a new step; otherwise the form renames the named step.
type SwitchToStepFormMsg struct {
	NodeID  string
	Initial string
}

// SwitchToProposalsMsg requests the plan proposals view
type SwitchToProposalsMsg struct {
	Regenerate bool
}

// OpenAttachmentMsg asks the app to open a file in the external editor
type OpenAttachmentMsg struct {
	Path string
}

type canvasSavedMsg struct {
	stats *domain.SyncStats
	warn  error
}

type canvasErrMsg struct {
	err error
}

// Update handles messages for the canvas
func (m *CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case canvasSavedMsg:
		switch {
		case msg.warn != nil:
			m.SetMessage(fmt.Sprintf("Saved (index sync failed: %v)", msg.warn), true)
		case msg.stats != nil:
			m.SetMessage(fmt.Sprintf("Saved · %d steps indexed", msg.stats.NodesAdded), false)
		default:
			m.SetMessage("Saved", false)
		}
		return m, nil

	case canvasErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.mode == CanvasConfirmRemove {
			return m.updateConfirmRemove(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *CanvasModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, CanvasKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, CanvasKeys.Back):
		if m.connect.Active() {
			m.connect.Cancel()
			m.SetMessage("Connect cancelled", false)
			return m, nil
		}
		if m.drag != nil {
			m.drag = nil
			return m, nil
		}
		if m.session.Dirty() {
			return m, tea.Sequence(m.save(), func() tea.Msg { return SwitchToPickerMsg{} })
		}
		return m, func() tea.Msg { return SwitchToPickerMsg{} }

	case key.Matches(msg, CanvasKeys.NextStep):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, CanvasKeys.PrevStep):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, CanvasKeys.Pan):
		m.pan(msg.String())
		return m, nil

	case key.Matches(msg, CanvasKeys.AddStep):
		return m, func() tea.Msg { return SwitchToStepFormMsg{} }

	case key.Matches(msg, CanvasKeys.Rename):
		if n := m.selectedNode(); n != nil {
			id, label := n.ID, n.Label
			return m, func() tea.Msg {
				return SwitchToStepFormMsg{NodeID: id, Initial: label}
			}
		}
		return m, nil

	case key.Matches(msg, CanvasKeys.Status):
		if n := m.selectedNode(); n != nil {
			m.session.CycleStatus(n.ID)
		}
		return m, nil

	case key.Matches(msg, CanvasKeys.Remove):
		if n := m.selectedNode(); n != nil {
			m.mode = CanvasConfirmRemove
			m.confirm.SetTarget("step", n.ID, n.Label)
		}
		return m, nil

	case key.Matches(msg, CanvasKeys.Connect):
		return m.handleConnectKey()

	case key.Matches(msg, CanvasKeys.Layout):
		m.session.AutoLayout(m.contentWidth())
		m.panX, m.panY = 0, 0
		return m, nil

	case key.Matches(msg, CanvasKeys.Undo):
		if !m.session.Undo() {
			m.SetMessage("Nothing to undo", false)
		} else {
			m.ensureSelection()
		}
		return m, nil

	case key.Matches(msg, CanvasKeys.Redo):
		if !m.session.Redo() {
			m.SetMessage("Nothing to redo", false)
		} else {
			m.ensureSelection()
		}
		return m, nil

	case key.Matches(msg, CanvasKeys.Save):
		return m, m.save()

	case key.Matches(msg, CanvasKeys.Propose):
		return m, func() tea.Msg { return SwitchToProposalsMsg{} }

	case key.Matches(msg, CanvasKeys.Regenerate):
		return m, func() tea.Msg { return SwitchToProposalsMsg{Regenerate: true} }

	case key.Matches(msg, CanvasKeys.OpenNotes):
		if n := m.selectedNode(); n != nil && len(n.Attachments) > 0 {
			path := n.Attachments[0].Path
			return m, func() tea.Msg { return OpenAttachmentMsg{Path: path} }
		}
		m.SetMessage("No attachments on this step", false)
		return m, nil

	case key.Matches(msg, CanvasKeys.Search):
		return m, func() tea.Msg { return SwitchToSearchMsg{} }

	case key.Matches(msg, CanvasKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

// handleConnectKey starts a draft from the selected step, or, with a draft
// live, releases it onto the selected step. Releasing over an existing edge
// removes that edge instead.
func (m *CanvasModel) handleConnectKey() (tea.Model, tea.Cmd) {
	n := m.selectedNode()
	if n == nil {
		return m, nil
	}

	if !m.connect.Active() {
		m.connect.Begin(n.ID, nodeCenter(n))
		m.SetMessage("Select a target step and press c again", false)
		return m, nil
	}

	source, ok := m.connect.Release(n.ID)
	if !ok {
		m.SetMessage("Connect cancelled", false)
		return m, nil
	}
	m.applyEdge(source, n.ID)
	return m, nil
}

func (m *CanvasModel) applyEdge(sourceID, targetID string) {
	if m.session.Task().HasEdge(sourceID, targetID) {
		m.session.Disconnect(sourceID, targetID)
		m.SetMessage("Edge removed", false)
		return
	}
	if m.session.Connect(sourceID, targetID) {
		m.SetMessage("Edge added", false)
	} else {
		m.SetMessage("Cannot connect those steps", true)
	}
}

func (m *CanvasModel) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled, _ := m.confirm.HandleKeyMsg(msg,
		func() tea.Msg { return nil },
		func() tea.Msg { return nil },
	)
	if !handled {
		return m, nil
	}
	m.mode = CanvasBrowse
	if key.Matches(msg, m.confirm.Keys.Confirm) {
		id := m.confirm.TargetID
		if m.session.RemoveNode(id) {
			m.SetMessage("Step removed", false)
			if m.selected == id {
				m.selected = ""
				m.ensureSelection()
			}
		}
	}
	return m, nil
}

func (m *CanvasModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pointer := m.toCanvas(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY -= panStep
		if m.panY < 0 {
			m.panY = 0
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		m.panY += panStep
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		n := m.nodeAt(pointer)
		if n == nil {
			if m.connect.Active() {
				m.connect.Cancel()
				m.SetMessage("Connect cancelled", false)
			}
			return m, nil
		}
		m.selected = n.ID
		if m.connect.Active() {
			// A live draft takes the click as its release target.
			if source, ok := m.connect.Release(n.ID); ok {
				m.applyEdge(source, n.ID)
			}
			return m, nil
		}
		d := domain.NewDrag(n.ID, n.Position, pointer, domain.Size{Width: domain.CardWidth, Height: domain.CardHeight})
		m.drag = &d
		m.dragPos = n.Position
		return m, nil

	case tea.MouseActionMotion:
		if m.connect.Active() {
			m.connect.Move(pointer)
			return m, nil
		}
		if m.drag != nil {
			m.dragPos = m.drag.PositionAt(pointer, m.containerSize())
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag != nil {
			pos := m.drag.PositionAt(pointer, m.containerSize())
			m.session.MoveNode(m.drag.NodeID, pos)
			m.drag = nil
		}
		return m, nil
	}

	return m, nil
}

func (m *CanvasModel) save() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Save(); err != nil {
			return canvasErrMsg{fmt.Errorf("failed to save task: %w", err)}
		}
		if m.index == nil {
			return canvasSavedMsg{}
		}
		stats, err := m.index.SyncTask(m.session.Task())
		if err != nil {
			return canvasSavedMsg{warn: err}
		}
		return canvasSavedMsg{stats: stats}
	}
}

func (m *CanvasModel) selectedNode() *domain.Node {
	if m.selected == "" {
		return nil
	}
	return m.session.Task().Node(m.selected)
}

// ensureSelection keeps the selection pointing at a live node after undo,
// redo, or removal rewrote the node set.
func (m *CanvasModel) ensureSelection() {
	nodes := m.session.Task().Nodes
	if len(nodes) == 0 {
		m.selected = ""
		return
	}
	for _, n := range nodes {
		if n.ID == m.selected {
			return
		}
	}
	m.selected = nodes[0].ID
}

func (m *CanvasModel) moveSelection(delta int) {
	nodes := m.session.Task().Nodes
	if len(nodes) == 0 {
		return
	}
	cur := -1
	for i, n := range nodes {
		if n.ID == m.selected {
			cur = i
			break
		}
	}
	next := (cur + delta + len(nodes)) % len(nodes)
	if cur == -1 {
		next = 0
	}
	m.selected = nodes[next].ID
}

func (m *CanvasModel) pan(k string) {
	switch k {
	case "up", "k":
		m.panY -= panStep
	case "down", "j":
		m.panY += panStep
	case "left", "h":
		m.panX -= panStep
	case "right", "l":
		m.panX += panStep
	}
	if m.panX < 0 {
		m.panX = 0
	}
	if m.panY < 0 {
		m.panY = 0
	}
}

func (m *CanvasModel) toCanvas(x, y int) domain.Position {
	return domain.Position{
		X: m.panX + float64(x)*UnitsPerCol,
		Y: m.panY + float64(y)*UnitsPerRow,
	}
}

// nodeAt returns the topmost node under the pointer. Later nodes draw on
// top of earlier ones, so scan back to front.
func (m *CanvasModel) nodeAt(p domain.Position) *domain.Node {
	nodes := m.session.Task().Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		pos := m.displayPosition(n)
		if p.X >= pos.X && p.X < pos.X+domain.CardWidth &&
			p.Y >= pos.Y && p.Y < pos.Y+domain.CardHeight {
			return n
		}
	}
	return nil
}

// displayPosition is the node's stored position, or the drag preview
// position while the node is being dragged.
func (m *CanvasModel) displayPosition(n *domain.Node) domain.Position {
	if m.drag != nil && m.drag.NodeID == n.ID {
		return m.dragPos
	}
	return n.Position
}

func (m *CanvasModel) contentWidth() float64 {
	w := float64(m.Width) * UnitsPerCol
	if w <= 0 {
		w = 1200
	}
	return w
}

// containerSize is the drag clamping area: the union of the window and the
// current content extent, so dragging can reach everything but not escape.
func (m *CanvasModel) containerSize() domain.Size {
	size := domain.Size{
		Width:  float64(m.Width) * UnitsPerCol,
		Height: float64(m.Height-2) * UnitsPerRow,
	}
	for _, n := range m.session.Task().Nodes {
		if x := n.Position.X + domain.CardWidth + domain.LayoutMarginX; x > size.Width {
			size.Width = x
		}
		if y := n.Position.Y + domain.CardHeight + domain.LayoutMarginY; y > size.Height {
			size.Height = y
		}
	}
	return size
}

func nodeCenter(n *domain.Node) domain.Position {
	return domain.Position{
		X: n.Position.X + domain.CardWidth/2,
		Y: n.Position.Y + domain.CardHeight/2,
	}
}

// View renders the canvas
func (m *CanvasModel) View() string {
	if m.Width <= 0 || m.Height <= 2 {
		return ""
	}

	grid := newCellGrid(m.Width, m.Height-2)

	task := m.session.Task()
	for _, e := range task.Edges() {
		m.drawEdge(grid, task.Node(e.SourceID), task.Node(e.TargetID))
	}
	if m.connect.Active() {
		m.drawDraft(grid, task.Node(m.connect.Source()), m.connect.Pointer())
	}
	for _, n := range task.Nodes {
		m.drawCard(grid, n)
	}

	var b strings.Builder
	b.WriteString(grid.render())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *CanvasModel) renderStatusBar() string {
	task := m.session.Task()

	title := task.Title
	if m.session.Dirty() {
		title += " *"
	}

	var mode string
	switch {
	case m.mode == CanvasConfirmRemove:
		return styles.StatusBar.Width(m.Width).Render(
			RenderConfirmPrompt(fmt.Sprintf("Remove step %q and its edges?", m.confirm.TargetName)))
	case m.connect.Active():
		mode = "CONNECT"
	case m.drag != nil:
		mode = "DRAG"
	}

	left := styles.StatusKey.Render(title)
	if mode != "" {
		left += styles.CardSource.Render(" " + mode + " ")
	}
	if m.Message != "" {
		left += " " + RenderMessage(m.Message, m.MessageErr)
	}

	help := styles.StatusText.Render("a add · c connect · s status · L layout · u undo · w save · ? help")
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(help) - 2
	if gap < 1 {
		return styles.StatusBar.Width(m.Width).Render(left)
	}
	return styles.StatusBar.Width(m.Width).Render(left + strings.Repeat(" ", gap) + help)
}

// cell coordinates of a node's top-left corner, or ok=false when the node
// is scrolled out of view horizontally
func (m *CanvasModel) toCell(pos domain.Position) (col, row int) {
	col = int((pos.X - m.panX) / UnitsPerCol)
	row = int((pos.Y - m.panY) / UnitsPerRow)
	return col, row
}

func (m *CanvasModel) drawCard(g *cellGrid, n *domain.Node) {
	const w, h = 21, 3
	col, row := m.toCell(m.displayPosition(n))

	border, label := styBorder, styLabel
	switch {
	case m.connect.Active() && m.connect.Source() == n.ID:
		border, label = styBorderSource, styLabelSelected
	case n.ID == m.selected:
		border, label = styBorderSelected, styLabelSelected
	}

	g.box(col, row, w, h, border)

	glyph := '○'
	glyphStyle := styStatusNotStarted
	switch n.Status {
	case domain.StatusInProgress:
		glyph, glyphStyle = '◐', styStatusInProgress
	case domain.StatusCompleted:
		glyph, glyphStyle = '●', styStatusCompleted
	}
	g.set(col+2, row+1, glyph, glyphStyle)

	text := truncate(n.Label, w-6)
	g.text(col+4, row+1, text, label)

	if len(n.ActionItems) > 0 {
		done := 0
		for _, it := range n.ActionItems {
			if it.Done {
				done++
			}
		}
		tag := fmt.Sprintf("%d/%d", done, len(n.ActionItems))
		g.text(col+w-1-len(tag), row+2, tag, styEdge)
	}
}

func (m *CanvasModel) drawEdge(g *cellGrid, source, target *domain.Node) {
	if source == nil || target == nil {
		return
	}
	sc, sr := m.toCell(m.displayPosition(source))
	tc, tr := m.toCell(m.displayPosition(target))
	drawRoute(g, sc+10, sr+3, tc+10, tr-1, styEdge)
	if tr-1 >= 0 {
		g.set(tc+10, tr-1, '▼', styEdge)
	}
}

func (m *CanvasModel) drawDraft(g *cellGrid, source *domain.Node, pointer domain.Position) {
	if source == nil {
		return
	}
	sc, sr := m.toCell(m.displayPosition(source))
	pc := int((pointer.X - m.panX) / UnitsPerCol)
	pr := int((pointer.Y - m.panY) / UnitsPerRow)
	drawRoute(g, sc+10, sr+3, pc, pr, styDraft)
	g.set(pc, pr, '+', styDraft)
}

// drawRoute draws an orthogonal line: down (or up) to a mid row, across,
// then down (or up) to the end.
func drawRoute(g *cellGrid, c1, r1, c2, r2 int, style styleID) {
	mid := (r1 + r2) / 2
	for r := minInt(r1, mid); r <= maxInt(r1, mid); r++ {
		g.setIfEmpty(c1, r, '│', style)
	}
	for c := minInt(c1, c2); c <= maxInt(c1, c2); c++ {
		g.setIfEmpty(c, mid, '─', style)
	}
	for r := minInt(mid, r2); r <= maxInt(mid, r2); r++ {
		g.setIfEmpty(c2, r, '│', style)
	}
	if c1 != c2 {
		if c1 < c2 {
			g.setIfEmpty(c1, mid, '╰', style)
			g.setIfEmpty(c2, mid, '╮', style)
		} else {
			g.setIfEmpty(c1, mid, '╯', style)
			g.setIfEmpty(c2, mid, '╭', style)
		}
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
