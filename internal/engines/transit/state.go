package transit

// State is a stage of the ingress search state machine.
//
//	Estimating -> Bracketing -> Bisecting -> Verifying -> Done
//	                  |             |             |
//	                  +-> Fallback  +-> Done      +-> Fallback
type State string

const (
	StateEstimating State = "Estimating"
	StateBracketing State = "Bracketing"
	StateBisecting  State = "Bisecting"
	StateVerifying  State = "Verifying"
	StateDone       State = "Done"
	StateFallback   State = "Fallback"
)

// IsTerminal reports whether the search has finished.
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateFallback:
		return true
	default:
		return false
	}
}

// isAllowedTransition encodes the edges of the state machine. Bisecting may go
// straight to Done when verification is disabled.
func isAllowedTransition(from, to State) bool {
	switch from {
	case StateEstimating:
		return to == StateBracketing || to == StateFallback
	case StateBracketing:
		return to == StateBisecting || to == StateFallback
	case StateBisecting:
		return to == StateVerifying || to == StateDone
	case StateVerifying:
		return to == StateDone || to == StateFallback
	default:
		return false
	}
}

// Direction selects whether the search looks after or before the start instant.
type Direction int

const (
	// Forward finds the next entry into the target sign after the start.
	Forward Direction = iota
	// Backward finds the most recent entry into the target sign before the start.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}
