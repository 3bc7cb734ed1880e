package undofsm_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/librescoot/undofsm"
)

// Example: undo and redo over the built-in daily routine
func Example_undoRedo() {
	m, err := undofsm.New(undofsm.Config{Initial: undofsm.StateNormal})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, ev := range []undofsm.EventID{undofsm.EventStudy, undofsm.EventGetHungry} {
		if err := m.Trigger(ev); err != nil {
			fmt.Println(err)
			return
		}
	}
	fmt.Println(m.CurrentState())

	fmt.Println(m.Undo(), m.CurrentState())
	fmt.Println(m.Undo(), m.CurrentState())
	fmt.Println(m.Undo(), m.CurrentState())
	fmt.Println(m.Redo(), m.CurrentState())

	// Output:
	// hungry
	// true busy
	// true normal
	// false normal
	// true busy
}

// Example: rejected events leave the machine where it was
func Example_noTransition() {
	m, err := undofsm.New(undofsm.Config{Initial: undofsm.StateSleeping})
	if err != nil {
		fmt.Println(err)
		return
	}

	err = m.Trigger(undofsm.EventEat)
	fmt.Println(errors.Is(err, undofsm.ErrNoTransition))
	fmt.Println(err)
	fmt.Println(m.CurrentState())

	// Output:
	// true
	// no transition for event "eat" from state "sleeping"
	// sleeping
}

// Example: a custom graph with logging and a change observer
func Example_customDefinition() {
	const (
		stateLocked   undofsm.StateID = "locked"
		stateUnlocked undofsm.StateID = "unlocked"

		evCoin undofsm.EventID = "coin"
		evPush undofsm.EventID = "push"
	)

	def := undofsm.NewDefinition().
		State(stateLocked).
		State(stateUnlocked).
		Transition(stateLocked, evCoin, stateUnlocked).
		Transition(stateUnlocked, evPush, stateLocked).
		Initial(stateLocked)

	m, err := def.Build(def.DefaultConfig(),
		undofsm.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))),
		undofsm.WithStateChangeCallback(func(c *undofsm.Context) {
			fmt.Printf("%s: %q -> %s\n", c.Kind, c.From, c.To)
		}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := m.Trigger(evCoin); err != nil {
		fmt.Println(err)
		return
	}
	if err := m.Trigger(evPush); err != nil {
		fmt.Println(err)
		return
	}
	m.Undo()
	fmt.Println(m.History())

	// Output:
	// init: "" -> locked
	// trigger: "locked" -> unlocked
	// trigger: "unlocked" -> locked
	// undo: "locked" -> unlocked
	// [locked unlocked locked]
}
