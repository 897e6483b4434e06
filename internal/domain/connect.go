package domain

// ConnectState identifies the connect-gesture phase
type ConnectState int

const (
	ConnectIdle ConnectState = iota
	ConnectDrafting
)

// ConnectSession is the transient state machine for drag-to-connect edge
// creation. It tracks only the source node and the live pointer preview;
// the resulting edge is applied by the caller, so ephemeral gesture state
// never reaches the graph or the undo timeline.
//
// Only one draft can be active: a Begin while already drafting cancels the
// prior draft and starts the new one.
type ConnectSession struct {
	state    ConnectState
	sourceID string
	pointer  Position
}

// Begin starts a draft from the given source node
func (s *ConnectSession) Begin(sourceID string, pointer Position) {
	s.state = ConnectDrafting
	s.sourceID = sourceID
	s.pointer = pointer
}

// Move updates the live preview coordinate. No-op when idle.
func (s *ConnectSession) Move(pointer Position) {
	if s.state != ConnectDrafting {
		return
	}
	s.pointer = pointer
}

// Release ends the draft on targetID. Returns the source id and true when an
// edge source→target should be created; releasing on the source node itself
// (or with no active draft) is a cancel.
func (s *ConnectSession) Release(targetID string) (sourceID string, ok bool) {
	if s.state != ConnectDrafting {
		return "", false
	}
	sourceID = s.sourceID
	s.reset()
	if targetID == sourceID {
		return "", false
	}
	return sourceID, true
}

// Cancel abandons the draft without creating an edge
func (s *ConnectSession) Cancel() {
	s.reset()
}

func (s *ConnectSession) reset() {
	s.state = ConnectIdle
	s.sourceID = ""
	s.pointer = Position{}
}

// Active reports whether a draft is in progress
func (s *ConnectSession) Active() bool {
	return s.state == ConnectDrafting
}

// Source returns the draft's source node id (empty when idle)
func (s *ConnectSession) Source() string {
	return s.sourceID
}

// Pointer returns the live preview coordinate
func (s *ConnectSession) Pointer() Position {
	return s.pointer
}
