package undofsm

// Change describes a single settled state change
type Change struct {
	Kind  ChangeKind
	Event EventID // Only set for ChangeTrigger
	From  StateID // Empty for ChangeInit
	To    StateID
}
