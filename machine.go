package undofsm

import (
	"log/slog"
	"sync"
)

// Machine is the runtime FSM instance.
// All methods are safe for concurrent use. Callbacks run after the lock is
// released, so with concurrent callers they may observe changes out of order
// and Context.CurrentState may already differ from Change.To.
type Machine struct {
	states  map[StateID]*State
	order   []StateID             // Declaration order
	events  map[EventID][]StateID // Event -> states accepting it
	initial StateID

	current *State
	history history
	mu      sync.RWMutex

	data                any
	logger              *slog.Logger
	metrics             *Metrics
	stateChangeCallback func(*Context)
}

// MachineOption is a functional option for configuring a Machine
type MachineOption func(*Machine)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithData sets the application data accessible via Context
func WithData(data any) MachineOption {
	return func(m *Machine) {
		m.data = data
	}
}

// WithStateChangeCallback sets a callback invoked after each state change,
// including the entry into the initial state
func WithStateChangeCallback(fn func(*Context)) MachineOption {
	return func(m *Machine) {
		m.stateChangeCallback = fn
	}
}

// WithMetrics reports state changes and history size to metrics
func WithMetrics(metrics *Metrics) MachineOption {
	return func(m *Machine) {
		m.metrics = metrics
	}
}

// New builds a machine over the built-in DailyRoutine graph
func New(cfg Config, opts ...MachineOption) (*Machine, error) {
	return DailyRoutine().Build(cfg, opts...)
}

// OnStateChange sets a callback invoked after each state change
func (m *Machine) OnStateChange(fn func(*Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateChangeCallback = fn
}

// CurrentState returns the current state
func (m *Machine) CurrentState() StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.ID
}

// Initial returns the state the machine was built with and returns to on Reset
func (m *Machine) Initial() StateID {
	return m.initial
}

// SetState forces a direct state change, bypassing the transition table.
// The change is recorded in history and discards any redo branch.
func (m *Machine) SetState(id StateID) error {
	m.mu.Lock()
	change, err := m.jumpRecording(id, ChangeJump, "")
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.settle(change)
	return nil
}

// Trigger takes the current state's transition for event
func (m *Machine) Trigger(event EventID) error {
	m.mu.Lock()
	from := m.current.ID
	to, ok := m.current.Transitions[event]
	if !ok {
		m.metrics.observeRejected(from, event)
		m.mu.Unlock()
		m.logger.Debug("no transition found", "event", event, "state", from)
		return &NoTransitionError{State: from, Event: event}
	}
	change, err := m.jumpRecording(to, ChangeTrigger, event)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.settle(change)
	return nil
}

// Can reports whether the current state has a transition for event
func (m *Machine) Can(event EventID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Accepts(event)
}

// Reset returns to the initial state. History is kept; the reset is recorded
// like any other change.
func (m *Machine) Reset() error {
	m.mu.Lock()
	change, err := m.jumpRecording(m.initial, ChangeReset, "")
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.settle(change)
	return nil
}

// States returns every state in declaration order
func (m *Machine) States() []StateID {
	out := make([]StateID, len(m.order))
	copy(out, m.order)
	return out
}

// StatesFor returns the states that have a transition for event.
// The result is empty, not nil, for unknown events.
func (m *Machine) StatesFor(event EventID) []StateID {
	src := m.events[event]
	out := make([]StateID, len(src))
	copy(out, src)
	return out
}

// Undo moves back one history entry. Returns false if there is none.
func (m *Machine) Undo() bool {
	return m.step(-1, ChangeUndo)
}

// Redo moves forward one history entry. Returns false if there is none.
func (m *Machine) Redo() bool {
	return m.step(1, ChangeRedo)
}

// CanUndo reports whether Undo would succeed
func (m *Machine) CanUndo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.canUndo()
}

// CanRedo reports whether Redo would succeed
func (m *Machine) CanRedo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.canRedo()
}

// ClearHistory drops all history. The current state is unchanged.
func (m *Machine) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history.clear()
	m.metrics.observeHistory(&m.history)
	m.logger.Debug("history cleared", "state", m.current.ID)
}

// History returns a copy of the recorded states, oldest first
func (m *Machine) History() []StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.snapshot()
}

func (m *Machine) step(delta int, kind ChangeKind) bool {
	m.mu.Lock()
	id, ok := m.history.peek(delta)
	if !ok {
		m.mu.Unlock()
		m.logger.Debug("history exhausted", "kind", kind, "state", m.current.ID)
		return false
	}
	change, err := m.jumpReplay(id, kind, delta)
	m.mu.Unlock()
	if err != nil {
		m.logger.Error("history replay failed", "state", id, "err", err)
		return false
	}
	m.settle(change)
	return true
}

// jumpRecording enters id and records it in history. Caller holds m.mu.
func (m *Machine) jumpRecording(id StateID, kind ChangeKind, event EventID) (Change, error) {
	change, err := m.enter(id, kind, event)
	if err != nil {
		return change, err
	}
	m.history.record(id)
	m.metrics.observeChange(change, &m.history)
	return change, nil
}

// jumpReplay enters id and moves the history cursor by delta without
// touching history content. Caller holds m.mu.
func (m *Machine) jumpReplay(id StateID, kind ChangeKind, delta int) (Change, error) {
	change, err := m.enter(id, kind, "")
	if err != nil {
		return change, err
	}
	m.history.move(delta)
	m.metrics.observeChange(change, &m.history)
	return change, nil
}

// enter switches the current state pointer. Caller holds m.mu.
func (m *Machine) enter(id StateID, kind ChangeKind, event EventID) (Change, error) {
	state, ok := m.states[id]
	if !ok {
		return Change{}, &InvalidStateError{State: id}
	}

	var from StateID
	if m.current != nil {
		from = m.current.ID
	}
	m.current = state

	m.logger.Debug("entering state", "state", id, "from", from, "kind", kind, "event", event)

	return Change{Kind: kind, Event: event, From: from, To: id}, nil
}

// settle runs exit, entry and change callbacks. Must be called without m.mu held.
func (m *Machine) settle(change Change) {
	m.mu.RLock()
	callback := m.stateChangeCallback
	m.mu.RUnlock()

	ctx := &Context{
		Change: change,
		FSM:    m,
		Data:   m.data,
		Logger: m.logger,
	}

	// The state has already changed; hook failures are reported, not rolled back
	if from, ok := m.states[change.From]; ok && from.OnExit != nil {
		if err := from.OnExit(ctx); err != nil {
			m.logger.Warn("exit action failed", "state", change.From, "kind", change.Kind, "err", err)
		}
	}
	if to := m.states[change.To]; to.OnEnter != nil {
		if err := to.OnEnter(ctx); err != nil {
			m.logger.Warn("entry action failed", "state", change.To, "kind", change.Kind, "err", err)
		}
	}
	if callback != nil {
		callback(ctx)
	}
}
