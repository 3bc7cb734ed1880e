package undofsm

import "log/slog"

// StateID is a unique identifier for a state
type StateID string

// EventID is a unique identifier for an event type
type EventID string

// ChangeKind classifies how the machine arrived in its current state
type ChangeKind int

const (
	// ChangeTrigger is a transition taken in response to an event
	ChangeTrigger ChangeKind = iota
	// ChangeJump is a direct SetState, bypassing the transition table
	ChangeJump
	// ChangeReset returns to the initial state
	ChangeReset
	// ChangeUndo steps back one entry in history
	ChangeUndo
	// ChangeRedo steps forward one entry in history
	ChangeRedo
	// ChangeInit is the entry into the initial state during construction
	ChangeInit
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeTrigger:
		return "trigger"
	case ChangeJump:
		return "jump"
	case ChangeReset:
		return "reset"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	case ChangeInit:
		return "init"
	default:
		return "unknown"
	}
}

// Recorded reports whether changes of this kind are appended to history
func (k ChangeKind) Recorded() bool {
	return k != ChangeUndo && k != ChangeRedo
}

// Logger is the default logger used when none is provided
var Logger = slog.Default()
