package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowboard/internal/adapters/tui/styles"
)

// styleID indexes into the grid's style table. Styling per cell and
// rendering runs of equal style keeps ANSI escapes out of the grid itself.
type styleID uint8

const (
	styNone styleID = iota
	styEdge
	styDraft
	styBorder
	styBorderSelected
	styBorderSource
	styLabel
	styLabelSelected
	styStatusNotStarted
	styStatusInProgress
	styStatusCompleted
)

var gridStyles = map[styleID]lipgloss.Style{
	styEdge:             styles.EdgeLine,
	styDraft:            styles.EdgeDraft,
	styBorder:           styles.CardBorder,
	styBorderSelected:   styles.CardSelected,
	styBorderSource:     styles.CardSource,
	styLabel:            styles.CardLabel,
	styLabelSelected:    styles.CardLabelSelected,
	styStatusNotStarted: lipgloss.NewStyle().Foreground(styles.StatusNotStarted),
	styStatusInProgress: lipgloss.NewStyle().Foreground(styles.StatusInProgress),
	styStatusCompleted:  lipgloss.NewStyle().Foreground(styles.StatusCompleted),
}

// cellGrid is a fixed-size character buffer the canvas draws into before
// rendering. Out-of-bounds writes are dropped, which is what clipping at
// the viewport edge wants.
type cellGrid struct {
	width  int
	height int
	runes  []rune
	ids    []styleID
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		ids:    make([]styleID, width*height),
	}
	for i := range g.runes {
		g.runes[i] = ' '
	}
	return g
}

func (g *cellGrid) in(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *cellGrid) set(col, row int, r rune, id styleID) {
	if !g.in(col, row) {
		return
	}
	i := row*g.width + col
	g.runes[i] = r
	g.ids[i] = id
}

// setIfEmpty writes only on blank cells, so edge lines pass under cards
// and earlier lines.
func (g *cellGrid) setIfEmpty(col, row int, r rune, id styleID) {
	if !g.in(col, row) {
		return
	}
	i := row*g.width + col
	if g.runes[i] != ' ' {
		return
	}
	g.runes[i] = r
	g.ids[i] = id
}

func (g *cellGrid) text(col, row int, s string, id styleID) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, id)
	}
}

// box draws a rounded-border rectangle and blanks its interior
func (g *cellGrid) box(col, row, w, h int, id styleID) {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			g.set(c, r, ' ', styNone)
		}
	}
	for c := col + 1; c < col+w-1; c++ {
		g.set(c, row, '─', id)
		g.set(c, row+h-1, '─', id)
	}
	for r := row + 1; r < row+h-1; r++ {
		g.set(col, r, '│', id)
		g.set(col+w-1, r, '│', id)
	}
	g.set(col, row, '╭', id)
	g.set(col+w-1, row, '╮', id)
	g.set(col, row+h-1, '╰', id)
	g.set(col+w-1, row+h-1, '╯', id)
}

// render flattens the grid into styled terminal lines, batching runs of
// identical style into one Render call per run.
func (g *cellGrid) render() string {
	var b strings.Builder
	for row := 0; row < g.height; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		start := row * g.width
		col := 0
		for col < g.width {
			id := g.ids[start+col]
			end := col
			for end < g.width && g.ids[start+end] == id {
				end++
			}
			run := string(g.runes[start+col : start+end])
			if id == styNone {
				b.WriteString(run)
			} else {
				b.WriteString(gridStyles[id].Render(run))
			}
			col = end
		}
	}
	return b.String()
}
