package domain

// Card geometry and spacing in canvas units. The canvas is unit-agnostic;
// adapters decide how a unit maps onto pixels or terminal cells.
const (
	CardWidth  = 168.0
	CardHeight = 72.0

	LayoutMarginX  = 24.0
	LayoutMarginY  = 24.0
	LayoutHSpacing = 48.0
	LayoutVSpacing = 24.0
)

// Layers groups nodes into topological generations using Kahn's algorithm.
// Only edges between nodes present in the task are considered. Order within
// a layer preserves the task's insertion order, which makes the result
// deterministic for a given graph.
//
// If peeling stalls before all nodes are consumed (the graph has a cycle),
// every remaining node is collected into one final trailing layer, again in
// insertion order. A cyclic graph is degenerate, not an error.
func (t *Task) Layers() [][]*Node {
	if len(t.Nodes) == 0 {
		return nil
	}

	inDegree := make(map[string]int, len(t.Nodes))
	for _, n := range t.Nodes {
		inDegree[n.ID] = 0
	}
	for _, n := range t.Nodes {
		seen := make(map[string]bool, len(n.LeadsTo))
		for _, target := range n.LeadsTo {
			if target == n.ID || seen[target] {
				continue
			}
			if _, ok := inDegree[target]; !ok {
				continue
			}
			seen[target] = true
			inDegree[target]++
		}
	}

	placed := make(map[string]bool, len(t.Nodes))
	var layers [][]*Node
	remaining := len(t.Nodes)

	for remaining > 0 {
		var frontier []*Node
		for _, n := range t.Nodes {
			if !placed[n.ID] && inDegree[n.ID] == 0 {
				frontier = append(frontier, n)
			}
		}
		if len(frontier) == 0 {
			// Cycle: dump every unpeeled node into one trailing layer.
			var trailing []*Node
			for _, n := range t.Nodes {
				if !placed[n.ID] {
					trailing = append(trailing, n)
				}
			}
			layers = append(layers, trailing)
			break
		}
		for _, n := range frontier {
			placed[n.ID] = true
			remaining--
		}
		for _, n := range frontier {
			seen := make(map[string]bool, len(n.LeadsTo))
			for _, target := range n.LeadsTo {
				if target == n.ID || seen[target] {
					continue
				}
				if _, ok := inDegree[target]; !ok {
					continue
				}
				seen[target] = true
				inDegree[target]--
			}
		}
		layers = append(layers, frontier)
	}

	return layers
}

// AutoLayout assigns every node a position by laying out topological layers
// as columns, left to right, wrapping into a new row when a column would
// overflow contentWidth. Nodes within a layer stack vertically with fixed
// spacing. Returns the bounding box of the placed nodes (plus margins) as the
// required content-area size; the zero Size means the task has no nodes.
func (t *Task) AutoLayout(contentWidth float64) Size {
	layers := t.Layers()
	if len(layers) == 0 {
		return Size{}
	}

	x := LayoutMarginX
	y := LayoutMarginY
	rowMaxHeight := 0.0
	var maxX, maxY float64

	for i, layer := range layers {
		colHeight := float64(len(layer))*(CardHeight+LayoutVSpacing) - LayoutVSpacing
		if i > 0 && x+CardWidth > contentWidth {
			x = LayoutMarginX
			y += rowMaxHeight + 2*LayoutVSpacing
			rowMaxHeight = 0
		}
		for j, n := range layer {
			n.Position = Position{
				X: x,
				Y: y + float64(j)*(CardHeight+LayoutVSpacing),
			}
		}
		if colHeight > rowMaxHeight {
			rowMaxHeight = colHeight
		}
		if right := x + CardWidth; right > maxX {
			maxX = right
		}
		if bottom := y + colHeight; bottom > maxY {
			maxY = bottom
		}
		x += CardWidth + LayoutHSpacing
	}

	return Size{
		Width:  maxX + LayoutMarginX,
		Height: maxY + LayoutMarginY,
	}
}
