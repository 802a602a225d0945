package states

import "fmt"

// GamePhase represents where the turn controller is within a turn
type GamePhase int

const (
	// PhaseSetup - Board and bag preparation before the first turn
	PhaseSetup GamePhase = iota

	// PhaseAwaitingChoice - Waiting for the player to move to submit a choice
	PhaseAwaitingChoice

	// PhaseValidating - Checking a submitted choice against the current choice set
	PhaseValidating

	// PhaseApplying - Mutating the authoritative board
	PhaseApplying

	// PhaseRecomputing - Rebuilding choice sets and checking terminal conditions
	PhaseRecomputing

	// PhaseGameOver - Final state once a result is known
	PhaseGameOver

	// PhaseError - An internal invariant was broken
	PhaseError
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseAwaitingChoice:
		return "AwaitingChoice"
	case PhaseValidating:
		return "Validating"
	case PhaseApplying:
		return "Applying"
	case PhaseRecomputing:
		return "Recomputing"
	case PhaseGameOver:
		return "GameOver"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver || p == PhaseError
}

// CanReceiveActions returns true if a choice may be submitted in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseAwaitingChoice
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhaseAwaitingChoice, PhaseGameOver, PhaseError}
	case PhaseAwaitingChoice:
		return []GamePhase{PhaseValidating, PhaseError}
	case PhaseValidating:
		return []GamePhase{PhaseApplying, PhaseAwaitingChoice, PhaseError}
	case PhaseApplying:
		return []GamePhase{PhaseRecomputing, PhaseError}
	case PhaseRecomputing:
		return []GamePhase{PhaseAwaitingChoice, PhaseGameOver, PhaseError}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Setup":
		return PhaseSetup
	case "AwaitingChoice":
		return PhaseAwaitingChoice
	case "Validating":
		return PhaseValidating
	case "Applying":
		return PhaseApplying
	case "Recomputing":
		return PhaseRecomputing
	case "GameOver":
		return PhaseGameOver
	case "Error":
		return PhaseError
	default:
		return PhaseSetup
	}
}
