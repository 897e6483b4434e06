package domain

import (
	"reflect"
	"testing"
)

func layerIDs(layers [][]*Node) [][]string {
	var out [][]string
	for _, layer := range layers {
		var ids []string
		for _, n := range layer {
			ids = append(ids, n.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestLayersDiamondWithIsolatedNode(t *testing.T) {
	// 1→2, 2→3, 1→4, 4→3, node 5 isolated.
	task := testTask("1", "2", "3", "4", "5")
	task.AddEdge("1", "2")
	task.AddEdge("2", "3")
	task.AddEdge("1", "4")
	task.AddEdge("4", "3")

	got := layerIDs(task.Layers())
	want := [][]string{{"1", "5"}, {"2", "4"}, {"3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layers = %v, want %v", got, want)
	}
}

func TestLayersCycleFallback(t *testing.T) {
	task := testTask("1", "2")
	task.AddEdge("1", "2")
	task.AddEdge("2", "1")

	got := layerIDs(task.Layers())
	want := [][]string{{"1", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layers = %v, want %v", got, want)
	}
}

func TestLayersPartialCycle(t *testing.T) {
	// 1 feeds a 2↔3 cycle; 1 peels, the cycle trails as one layer.
	task := testTask("1", "2", "3")
	task.AddEdge("1", "2")
	task.AddEdge("2", "3")
	task.AddEdge("3", "2")

	got := layerIDs(task.Layers())
	want := [][]string{{"1"}, {"2", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layers = %v, want %v", got, want)
	}
}

func TestAutoLayoutColumns(t *testing.T) {
	task := testTask("1", "2", "3", "4", "5")
	task.AddEdge("1", "2")
	task.AddEdge("2", "3")
	task.AddEdge("1", "4")
	task.AddEdge("4", "3")

	// Wide enough for three columns: no wrapping.
	size := task.AutoLayout(1000)

	col0 := LayoutMarginX
	col1 := col0 + CardWidth + LayoutHSpacing
	col2 := col1 + CardWidth + LayoutHSpacing

	wantX := map[string]float64{"1": col0, "5": col0, "2": col1, "4": col1, "3": col2}
	for id, x := range wantX {
		if got := task.Node(id).Position.X; got != x {
			t.Errorf("node %s x = %v, want %v", id, got, x)
		}
	}

	// Second node of a layer stacks below the first.
	if got := task.Node("5").Position.Y - task.Node("1").Position.Y; got != CardHeight+LayoutVSpacing {
		t.Errorf("vertical stacking gap = %v, want %v", got, CardHeight+LayoutVSpacing)
	}

	if size.Width != col2+CardWidth+LayoutMarginX {
		t.Errorf("content width = %v, want %v", size.Width, col2+CardWidth+LayoutMarginX)
	}
	wantHeight := LayoutMarginY + 2*(CardHeight+LayoutVSpacing) - LayoutVSpacing + LayoutMarginY
	if size.Height != wantHeight {
		t.Errorf("content height = %v, want %v", size.Height, wantHeight)
	}
}

func TestAutoLayoutWrapsNarrowWidth(t *testing.T) {
	task := testTask("1", "2", "3")
	task.AddEdge("1", "2")
	task.AddEdge("2", "3")

	// Fits exactly one column: every layer after the first wraps to a new row.
	task.AutoLayout(LayoutMarginX + CardWidth)

	p1 := task.Node("1").Position
	p2 := task.Node("2").Position
	p3 := task.Node("3").Position

	if p1.X != LayoutMarginX || p2.X != LayoutMarginX || p3.X != LayoutMarginX {
		t.Errorf("expected all columns at the margin, got %v %v %v", p1.X, p2.X, p3.X)
	}

	rowStep := CardHeight + 2*LayoutVSpacing
	if p2.Y != p1.Y+rowStep {
		t.Errorf("row 2 y = %v, want %v", p2.Y, p1.Y+rowStep)
	}
	if p3.Y != p2.Y+rowStep {
		t.Errorf("row 3 y = %v, want %v", p3.Y, p2.Y+rowStep)
	}

	// No two nodes overlap vertically.
	if p2.Y < p1.Y+CardHeight || p3.Y < p2.Y+CardHeight {
		t.Error("wrapped rows overlap")
	}
}

func TestAutoLayoutDeterministic(t *testing.T) {
	task := testTask("1", "2", "3", "4", "5")
	task.AddEdge("1", "2")
	task.AddEdge("2", "3")
	task.AddEdge("1", "4")
	task.AddEdge("4", "3")
	task.AddEdge("5", "3")

	first := make(map[string]Position)
	size1 := task.AutoLayout(600)
	for _, n := range task.Nodes {
		first[n.ID] = n.Position
	}

	// Scramble positions, then lay out again with the same width.
	for i, n := range task.Nodes {
		n.Position = Position{X: float64(i) * 999, Y: float64(i) * -7}
	}
	size2 := task.AutoLayout(600)

	if size1 != size2 {
		t.Errorf("content size differs between runs: %+v vs %+v", size1, size2)
	}
	for _, n := range task.Nodes {
		if n.Position != first[n.ID] {
			t.Errorf("node %s moved between identical runs: %+v vs %+v", n.ID, first[n.ID], n.Position)
		}
	}
}

func TestAutoLayoutEmptyTask(t *testing.T) {
	task := NewTask("Empty", "")
	if size := task.AutoLayout(800); size != (Size{}) {
		t.Errorf("expected zero size for empty task, got %+v", size)
	}
}
