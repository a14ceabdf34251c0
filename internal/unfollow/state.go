package unfollow

// State is one stage of the unfollow workflow. States exist for
// observability: every transition is logged, so a stuck or failing run
// can be located from the journal alone.
type State int

const (
	// StateIdle is the rest state between runs.
	StateIdle State = iota

	// StateGuarded runs the synchronous pre-flight checks.
	StateGuarded

	// StateMenuOpening has located and activated the post's menu trigger.
	StateMenuOpening

	// StateMenuOpen is searching the rendered menu for an unfollow action.
	StateMenuOpen

	// StateActionSelected has activated the unfollow action.
	StateActionSelected

	// StateConfirming is searching for and activating a confirmation
	// control, which may legitimately not exist.
	StateConfirming

	// StateDone is the success terminal.
	StateDone

	// StateFailed is the error terminal.
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGuarded:
		return "guarded"
	case StateMenuOpening:
		return "menu_opening"
	case StateMenuOpen:
		return "menu_open"
	case StateActionSelected:
		return "action_selected"
	case StateConfirming:
		return "confirming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
