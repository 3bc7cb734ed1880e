package undofsm

import (
	"fmt"
)

// Built-in graph states
const (
	StateNormal   StateID = "normal"
	StateBusy     StateID = "busy"
	StateHungry   StateID = "hungry"
	StateSleeping StateID = "sleeping"
)

// Built-in graph events
const (
	EventStudy     EventID = "study"
	EventGetTired  EventID = "get_tired"
	EventGetHungry EventID = "get_hungry"
	EventEat       EventID = "eat"
	EventGetUp     EventID = "get_up"
)

// DailyRoutine returns the definition of the built-in graph:
//
//	normal   --study-->      busy
//	busy     --get_tired-->  sleeping
//	busy     --get_hungry--> hungry
//	hungry   --eat-->        normal
//	sleeping --get_hungry--> hungry
//	sleeping --get_up-->     normal
func DailyRoutine() *Definition {
	return NewDefinition().
		State(StateNormal).
		State(StateBusy).
		State(StateHungry).
		State(StateSleeping).
		Transition(StateNormal, EventStudy, StateBusy).
		Transition(StateBusy, EventGetTired, StateSleeping).
		Transition(StateBusy, EventGetHungry, StateHungry).
		Transition(StateHungry, EventEat, StateNormal).
		Transition(StateSleeping, EventGetHungry, StateHungry).
		Transition(StateSleeping, EventGetUp, StateNormal).
		Initial(StateNormal)
}

// Definition holds the FSM structure before building a Machine
type Definition struct {
	states      map[StateID]*State
	order       []StateID
	transitions []Transition
	initial     StateID
}

// NewDefinition creates a new FSM definition builder
func NewDefinition() *Definition {
	return &Definition{
		states:      make(map[StateID]*State),
		transitions: make([]Transition, 0),
	}
}

// State adds a state to the definition.
// Redeclaring a state replaces its options but keeps its original position.
func (d *Definition) State(id StateID, opts ...StateOption) *Definition {
	s := &State{ID: id}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := d.states[id]; !ok {
		d.order = append(d.order, id)
	}
	d.states[id] = s
	return d
}

// Transition adds a transition rule
func (d *Definition) Transition(from StateID, event EventID, to StateID) *Definition {
	d.transitions = append(d.transitions, Transition{
		From:  from,
		Event: event,
		To:    to,
	})
	return d
}

// Initial sets the default initial state
func (d *Definition) Initial(id StateID) *Definition {
	d.initial = id
	return d
}

// Validate checks the definition for errors
func (d *Definition) Validate() error {
	if len(d.states) == 0 {
		return fmt.Errorf("no states defined")
	}

	if d.initial == "" {
		return fmt.Errorf("no initial state defined")
	}

	if _, ok := d.states[d.initial]; !ok {
		return fmt.Errorf("initial state: %w", &InvalidStateError{State: d.initial})
	}

	type edge struct {
		from  StateID
		event EventID
	}
	seen := make(map[edge]StateID)

	for _, t := range d.transitions {
		if t.Event == "" {
			return fmt.Errorf("transition from %q has no event", t.From)
		}
		if _, ok := d.states[t.From]; !ok {
			return fmt.Errorf("transition from undefined state %q", t.From)
		}
		if _, ok := d.states[t.To]; !ok {
			return fmt.Errorf("transition to undefined state %q", t.To)
		}
		e := edge{from: t.From, event: t.Event}
		if prev, ok := seen[e]; ok {
			return fmt.Errorf("state %q has two transitions for event %q (to %q and %q)", t.From, t.Event, prev, t.To)
		}
		seen[e] = t.To
	}

	return nil
}

// DefaultConfig returns a Config that starts in the definition's initial state
func (d *Definition) DefaultConfig() Config {
	return Config{Initial: d.initial}
}

// Build creates a Machine from the definition and enters cfg.Initial.
// An empty or unknown cfg.Initial fails with *InvalidStateError.
// The machine gets its own copy of the graph, so a Definition may be built many times.
func (d *Definition) Build(cfg Config, opts ...MachineOption) (*Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	initial := cfg.Initial
	if _, ok := d.states[initial]; !ok || initial == "" {
		return nil, &InvalidStateError{State: initial}
	}

	m := &Machine{
		states:  make(map[StateID]*State, len(d.states)),
		order:   append([]StateID(nil), d.order...),
		events:  make(map[EventID][]StateID),
		initial: initial,
		history: newHistory(),
		logger:  Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	for _, id := range d.order {
		src := d.states[id]
		m.states[id] = &State{
			ID:          id,
			Transitions: make(map[EventID]StateID),
			OnEnter:     src.OnEnter,
			OnExit:      src.OnExit,
		}
	}
	for _, t := range d.transitions {
		m.states[t.From].Transitions[t.Event] = t.To
	}

	// Event index in state declaration order
	for _, id := range d.order {
		for _, t := range d.transitions {
			if t.From == id {
				m.events[t.Event] = append(m.events[t.Event], id)
			}
		}
	}

	m.logger.Debug("machine built", "states", len(m.states), "events", len(m.events), "initial", initial)

	m.mu.Lock()
	change, err := m.jumpRecording(initial, ChangeInit, "")
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to enter initial state: %w", err)
	}
	m.settle(change)

	return m, nil
}
