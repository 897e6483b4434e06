package domain

// Drag captures the state of a node being moved: the pointer-to-node offset
// at press time and the node's measured size. Like the connect draft, drag
// state is ephemeral and never enters history; the caller commits a single
// history step when the drop lands.
type Drag struct {
	NodeID   string
	NodeSize Size
	Offset   Position // pointer − node origin, captured at drag start
}

// NewDrag starts a drag of the node at nodeOrigin from the given pointer
func NewDrag(nodeID string, nodeOrigin, pointer Position, nodeSize Size) Drag {
	return Drag{
		NodeID:   nodeID,
		NodeSize: nodeSize,
		Offset: Position{
			X: pointer.X - nodeOrigin.X,
			Y: pointer.Y - nodeOrigin.Y,
		},
	}
}

// PositionAt resolves the node's new origin for the live pointer, clamped so
// the node stays inside the container. The container size is whatever the
// caller measures at this moment, not a value cached at drag start, so a
// container that grew mid-drag extends the reachable area.
func (d Drag) PositionAt(pointer Position, container Size) Position {
	return Position{
		X: clamp(pointer.X-d.Offset.X, 0, container.Width-d.NodeSize.Width),
		Y: clamp(pointer.Y-d.Offset.Y, 0, container.Height-d.NodeSize.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
