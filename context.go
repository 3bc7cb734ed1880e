package undofsm

import "log/slog"

// Context is passed to state-change callbacks.
// The machine lock is not held while callbacks run, so they may call back into FSM.
type Context struct {
	Change
	FSM    *Machine
	Data   any // User-provided application data
	Logger *slog.Logger
}

// CurrentState returns the current active state
func (c *Context) CurrentState() StateID {
	return c.FSM.CurrentState()
}

// Replayed reports whether the change came from undo or redo
func (c *Context) Replayed() bool {
	return !c.Kind.Recorded()
}

// CanUndo reports whether an earlier history entry exists
func (c *Context) CanUndo() bool {
	return c.FSM.CanUndo()
}

// CanRedo reports whether a later history entry exists
func (c *Context) CanRedo() bool {
	return c.FSM.CanRedo()
}
