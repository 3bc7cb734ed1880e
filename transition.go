package undofsm

// Transition defines a state change rule
type Transition struct {
	From  StateID // Source state
	Event EventID // Triggering event
	To    StateID // Target state
}
